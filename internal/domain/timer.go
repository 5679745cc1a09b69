package domain

import (
	"fmt"
)

// DefaultSessionMinutes is the session length used when none is configured.
const DefaultSessionMinutes = 25

// TimerState is the focus timer's countdown.
// Invariant: 0 <= Remaining <= TotalSeconds.
type TimerState struct {
	TotalSeconds int  `json:"total_seconds"`
	Remaining    int  `json:"remaining"`
	Ticking      bool `json:"ticking"`
}

// SessionSeconds converts a session length in minutes to seconds.
func SessionSeconds(minutes int) (int, error) {
	if minutes <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSessionLength, minutes)
	}
	return minutes * 60, nil
}

// NewTimerState returns an idle timer for a session of the given length.
func NewTimerState(minutes int) (TimerState, error) {
	total, err := SessionSeconds(minutes)
	if err != nil {
		return TimerState{}, err
	}
	return TimerState{TotalSeconds: total, Remaining: total}, nil
}

// Begin marks the timer as ticking, first rewinding a finished countdown.
// It reports false when the timer was already ticking.
func (s *TimerState) Begin() bool {
	if s.Ticking {
		return false
	}
	if s.Remaining <= 0 {
		s.Remaining = s.TotalSeconds
	}
	s.Ticking = true
	return true
}

// Tick counts one second down and reports whether the session just finished.
// A finished session stops ticking.
func (s *TimerState) Tick() bool {
	if s.Remaining > 0 {
		s.Remaining--
	}
	if s.Remaining <= 0 {
		s.Ticking = false
		return true
	}
	return false
}

// Stop halts ticking and keeps the remaining time.
func (s *TimerState) Stop() {
	s.Ticking = false
}

// Rewind stops the timer and restores the full session.
func (s *TimerState) Rewind() {
	s.Ticking = false
	s.Remaining = s.TotalSeconds
}

// Resize changes the session length and rewinds. Invalid lengths leave the
// state untouched.
func (s *TimerState) Resize(minutes int) error {
	total, err := SessionSeconds(minutes)
	if err != nil {
		return err
	}
	s.TotalSeconds = total
	s.Rewind()
	return nil
}

// Display renders the remaining time as MM:SS.
func (s TimerState) Display() string {
	return FormatClock(s.Remaining)
}

// ButtonLabel is the caption of the single start/pause control.
func (s TimerState) ButtonLabel() string {
	if s.Ticking {
		return "Pause"
	}
	return "Start"
}

// FormatClock renders sec as zero-padded MM:SS. Negative values render as
// 00:00; minutes grow past two digits for sessions over 99 minutes.
func FormatClock(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}
