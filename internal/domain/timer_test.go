package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sec  int
		want string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{59, "00:59"},
		{60, "01:00"},
		{1500, "25:00"},
		{1499, "24:59"},
		{5999, "99:59"},
		{6000, "100:00"},
		{-1, "00:00"},
		{-3600, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.sec), "FormatClock(%d)", tt.sec)
	}
}

func TestFormatClockShape(t *testing.T) {
	t.Parallel()

	for sec := 0; sec < 100*60; sec += 7 {
		got := FormatClock(sec)
		require.Len(t, got, 5, "FormatClock(%d)", sec)
		assert.Equal(t, byte(':'), got[2])
	}
}

func TestTimerStateLifecycle(t *testing.T) {
	t.Parallel()

	s, err := NewTimerState(1)
	require.NoError(t, err)
	assert.Equal(t, TimerState{TotalSeconds: 60, Remaining: 60}, s)
	assert.Equal(t, "Start", s.ButtonLabel())

	require.True(t, s.Begin())
	assert.False(t, s.Begin(), "second Begin while ticking")
	assert.Equal(t, "Pause", s.ButtonLabel())

	for i := 0; i < 59; i++ {
		require.False(t, s.Tick())
	}
	assert.Equal(t, "00:01", s.Display())
	assert.True(t, s.Tick())
	assert.False(t, s.Ticking)
	assert.Equal(t, 0, s.Remaining)

	// A finished countdown rewinds on the next start.
	require.True(t, s.Begin())
	assert.Equal(t, 60, s.Remaining)

	s.Tick()
	s.Stop()
	assert.Equal(t, 59, s.Remaining)
	assert.False(t, s.Ticking)

	s.Rewind()
	assert.Equal(t, 60, s.Remaining)
}

func TestTimerStateResize(t *testing.T) {
	t.Parallel()

	s, err := NewTimerState(25)
	require.NoError(t, err)
	s.Begin()
	s.Tick()

	require.NoError(t, s.Resize(50))
	assert.Equal(t, TimerState{TotalSeconds: 3000, Remaining: 3000}, s)

	for _, bad := range []int{0, -5} {
		err := s.Resize(bad)
		assert.True(t, errors.Is(err, ErrInvalidSessionLength), "Resize(%d)", bad)
		assert.Equal(t, 3000, s.TotalSeconds)
	}

	_, err = NewTimerState(0)
	assert.ErrorIs(t, err, ErrInvalidSessionLength)
}
