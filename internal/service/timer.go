package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/events"
	"github.com/phrazzld/studydesk/internal/schedule"
)

// TickInterval is the focus timer's resolution.
const TickInterval = time.Second

// TimerView is the focus timer state shown to the page.
type TimerView struct {
	TotalSeconds   int    `json:"total_seconds"`
	Remaining      int    `json:"remaining"`
	Ticking        bool   `json:"ticking"`
	Display        string `json:"display"`
	ButtonLabel    string `json:"button_label"`
	SessionMinutes int    `json:"session_minutes"`
}

// TickPayload is carried by timer.tick events.
type TickPayload struct {
	Remaining int    `json:"remaining"`
	Display   string `json:"display"`
}

// TimerService is the countdown state machine: idle, running, paused.
// Session length is configuration and is not persisted.
type TimerService struct {
	component
	state  domain.TimerState
	handle *schedule.Handle
}

// NewTimerService returns an idle timer for sessions of the given length.
func NewTimerService(d Deps, sessionMinutes int) (*TimerService, error) {
	state, err := domain.NewTimerState(sessionMinutes)
	if err != nil {
		return nil, err
	}
	return &TimerService{
		component: newComponent("timer", d),
		state:     state,
	}, nil
}

// Start begins counting down, rewinding a finished session first. Starting
// a running timer changes nothing.
func (s *TimerService) Start(ctx context.Context) TimerView {
	return do(s.loop, func() TimerView {
		s.start(ctx)
		return s.view()
	})
}

// Pause stops counting and keeps the remaining time. Idempotent.
func (s *TimerService) Pause(ctx context.Context) TimerView {
	return do(s.loop, func() TimerView {
		s.pause(ctx)
		return s.view()
	})
}

// Toggle starts an idle or paused timer and pauses a running one.
func (s *TimerService) Toggle(ctx context.Context) TimerView {
	return do(s.loop, func() TimerView {
		if s.state.Ticking {
			s.pause(ctx)
		} else {
			s.start(ctx)
		}
		return s.view()
	})
}

// Reset stops the timer and restores the full session.
func (s *TimerService) Reset(ctx context.Context) TimerView {
	return do(s.loop, func() TimerView {
		s.cancel()
		s.state.Rewind()
		view := s.view()
		s.emit(ctx, events.TimerReset, view)
		return view
	})
}

// SetSessionLength changes the session length, stopping and rewinding the
// timer. Non-positive lengths are rejected and change nothing.
func (s *TimerService) SetSessionLength(ctx context.Context, minutes int) (TimerView, error) {
	return do2(s.loop, func() (TimerView, error) {
		if err := s.state.Resize(minutes); err != nil {
			return s.view(), err
		}
		s.cancel()
		view := s.view()
		s.emit(ctx, events.TimerReset, view)
		s.log(ctx).Debug("session length changed", slog.Int("minutes", minutes))
		return view, nil
	})
}

// View returns the current state.
func (s *TimerService) View() TimerView {
	return do(s.loop, s.view)
}

// Close cancels a running countdown.
func (s *TimerService) Close() {
	s.loop.Do(s.cancel)
}

func (s *TimerService) start(ctx context.Context) {
	if !s.state.Begin() {
		return
	}
	s.handle = s.loop.Every(TickInterval, s.tick)
	s.emit(ctx, events.TimerChanged, s.view())
}

func (s *TimerService) pause(ctx context.Context) {
	if !s.state.Ticking {
		return
	}
	s.cancel()
	s.emit(ctx, events.TimerChanged, s.view())
}

// tick runs on the loop once per second while ticking.
func (s *TimerService) tick() {
	ctx := context.Background()
	done := s.state.Tick()
	s.emit(ctx, events.TimerTick, TickPayload{
		Remaining: s.state.Remaining,
		Display:   s.state.Display(),
	})
	if done {
		s.cancel()
		s.emit(ctx, events.TimerComplete, s.view())
		s.log(ctx).Info("focus session complete")
	}
}

func (s *TimerService) cancel() {
	s.handle.Cancel()
	s.handle = nil
	s.state.Stop()
}

func (s *TimerService) view() TimerView {
	return TimerView{
		TotalSeconds:   s.state.TotalSeconds,
		Remaining:      s.state.Remaining,
		Ticking:        s.state.Ticking,
		Display:        s.state.Display(),
		ButtonLabel:    s.state.ButtonLabel(),
		SessionMinutes: s.state.TotalSeconds / 60,
	}
}
