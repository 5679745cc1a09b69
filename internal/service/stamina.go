package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/events"
	"github.com/phrazzld/studydesk/internal/schedule"
	"github.com/phrazzld/studydesk/internal/store"
)

// StaminaConfig tunes the meter.
type StaminaConfig struct {
	TickDrain       float64
	HiddenDrain     float64
	RestoreSteps    int
	RestoreAmount   float64
	RestoreInterval time.Duration
}

// DefaultStaminaConfig returns the stock tuning: 0.06 per focus second, 8
// for leaving the page, and a restore of 20 steps of 0.6 every 80 ms.
func DefaultStaminaConfig() StaminaConfig {
	return StaminaConfig{
		TickDrain:       0.06,
		HiddenDrain:     8,
		RestoreSteps:    20,
		RestoreAmount:   0.6,
		RestoreInterval: 80 * time.Millisecond,
	}
}

// StaminaView is the meter state shown to the page.
type StaminaView struct {
	Value     float64 `json:"value"`
	Percent   int     `json:"percent"`
	FillWidth string  `json:"fill_width"`
	Restoring bool    `json:"restoring"`
	Hidden    bool    `json:"hidden"`
}

// StaminaService is the focus meter. It drains on timer ticks and when the
// page is hidden, and refills in small steps on request.
type StaminaService struct {
	component
	cfg     StaminaConfig
	value   float64
	hidden  bool
	restore *schedule.Handle
	stepped int
}

var _ events.EventHandler = (*StaminaService)(nil)

// NewStaminaService returns a full meter.
func NewStaminaService(d Deps, cfg StaminaConfig) *StaminaService {
	return &StaminaService{
		component: newComponent("stamina", d),
		cfg:       cfg,
		value:     domain.DefaultStamina,
	}
}

// Load reads the persisted value. Missing or malformed values yield a full
// meter.
func (s *StaminaService) Load(ctx context.Context) StaminaView {
	return do(s.loop, func() StaminaView {
		s.value = domain.DefaultStamina
		if raw, ok := s.read(ctx, store.KeyStamina); ok {
			v, valid := domain.ParseStamina(raw)
			if !valid {
				s.log(ctx).Warn("ignoring malformed persisted stamina",
					slog.String("value", raw))
			}
			s.value = v
		}
		return s.view()
	})
}

// Drain lowers the meter by amount. Negative amounts are ignored.
func (s *StaminaService) Drain(ctx context.Context, amount float64) StaminaView {
	return do(s.loop, func() StaminaView {
		s.drain(ctx, amount)
		return s.view()
	})
}

// SetHidden records page visibility. Only a visible to hidden transition
// drains the meter.
func (s *StaminaService) SetHidden(ctx context.Context, hidden bool) StaminaView {
	return do(s.loop, func() StaminaView {
		wasHidden := s.hidden
		s.hidden = hidden
		if hidden && !wasHidden {
			s.drain(ctx, s.cfg.HiddenDrain)
		}
		return s.view()
	})
}

// Restore starts a stepped refill. A restore requested while one is still
// running is ignored and reported as ErrRestoreInProgress.
func (s *StaminaService) Restore(ctx context.Context) (StaminaView, error) {
	return do2(s.loop, func() (StaminaView, error) {
		if s.restore.Active() {
			return s.view(), ErrRestoreInProgress
		}
		if s.cfg.RestoreSteps <= 0 {
			return s.view(), nil
		}
		s.stepped = 0
		s.restore = s.loop.Every(s.cfg.RestoreInterval, s.restoreStep)
		view := s.view()
		s.emit(ctx, events.StaminaChanged, view)
		return view, nil
	})
}

// HandleEvent drains the meter on every focus timer tick. It runs on the
// loop, inside the timer's callback.
func (s *StaminaService) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TimerTick {
		return nil
	}
	s.drain(ctx, s.cfg.TickDrain)
	return nil
}

// View returns the current state.
func (s *StaminaService) View() StaminaView {
	return do(s.loop, s.view)
}

// Close cancels a running restore.
func (s *StaminaService) Close() {
	s.loop.Do(func() {
		s.restore.Cancel()
		s.restore = nil
	})
}

func (s *StaminaService) restoreStep() {
	ctx := context.Background()
	s.stepped++
	if s.stepped >= s.cfg.RestoreSteps {
		s.restore.Cancel()
		s.restore = nil
	}
	s.set(ctx, s.value+s.cfg.RestoreAmount)
}

func (s *StaminaService) drain(ctx context.Context, amount float64) {
	if amount <= 0 {
		return
	}
	s.set(ctx, s.value-amount)
}

// set clamps, persists and announces a new value.
func (s *StaminaService) set(ctx context.Context, v float64) {
	s.value = domain.ClampStamina(v)
	s.persist(ctx, store.KeyStamina, domain.FormatStamina(s.value))
	s.emit(ctx, events.StaminaChanged, s.view())
}

func (s *StaminaService) view() StaminaView {
	return StaminaView{
		Value:     s.value,
		Percent:   domain.StaminaPercent(s.value),
		FillWidth: domain.StaminaFillWidth(s.value),
		Restoring: s.restore.Active(),
		Hidden:    s.hidden,
	}
}
