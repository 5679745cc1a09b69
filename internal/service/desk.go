package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/studydesk/internal/audio"
	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/events"
)

// Options configure a Desk.
type Options struct {
	DefaultTheme   domain.Theme
	SessionMinutes int
	Stamina        StaminaConfig
	Ambient        audio.Config
	AmbientEnabled bool
	Decks          *domain.Catalog
	// Location renders grave timestamps; nil means time.Local.
	Location *time.Location
}

// Snapshot is the state of every component at one instant.
type Snapshot struct {
	Theme      ThemeView           `json:"theme"`
	Ambient    AmbientView         `json:"ambient"`
	Timer      TimerView           `json:"timer"`
	Stamina    StaminaView         `json:"stamina"`
	Notes      NotesView           `json:"notes"`
	Flashcards CardView            `json:"flashcards"`
	Graves     []domain.GraveEntry `json:"graves"`
}

// Desk holds the widget components and wires the timer's ticks to the
// stamina meter.
type Desk struct {
	Theme      *ThemeService
	Ambient    *AmbientService
	Timer      *TimerService
	Stamina    *StaminaService
	Notes      *NotesService
	Flashcards *FlashcardService
	Graves     *GraveyardService

	location *time.Location
	logger   *slog.Logger
}

// NewDesk builds every component on the shared dependencies.
func NewDesk(d Deps, opts Options) (*Desk, error) {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Events == nil {
		d.Events = events.NewInMemoryEventEmitter(d.Logger)
	}
	if opts.Decks == nil {
		opts.Decks = domain.StudyDecks()
	}
	if opts.SessionMinutes == 0 {
		opts.SessionMinutes = domain.DefaultSessionMinutes
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	timer, err := NewTimerService(d, opts.SessionMinutes)
	if err != nil {
		return nil, err
	}

	desk := &Desk{
		Theme:      NewThemeService(d, opts.DefaultTheme),
		Ambient:    NewAmbientService(d, opts.Ambient, opts.AmbientEnabled),
		Timer:      timer,
		Stamina:    NewStaminaService(d, opts.Stamina),
		Notes:      NewNotesService(d),
		Flashcards: NewFlashcardService(d, opts.Decks),
		Graves:     NewGraveyardService(d),
		location:   opts.Location,
		logger:     d.Logger.With("component", "desk"),
	}
	d.Events.RegisterHandler(desk.Stamina)
	return desk, nil
}

// Load restores every component from the store.
func (d *Desk) Load(ctx context.Context) {
	theme := d.Theme.Load(ctx)
	stamina := d.Stamina.Load(ctx)
	d.Notes.Load(ctx)
	cards := d.Flashcards.Load(ctx)
	graves := d.Graves.Load(ctx)

	d.logger.Info("desk loaded",
		slog.String("theme", string(theme.Theme)),
		slog.Float64("stamina", stamina.Value),
		slog.String("deck", cards.Deck),
		slog.Int("graves", graves))
}

// Snapshot returns the current state of every component.
func (d *Desk) Snapshot() Snapshot {
	return Snapshot{
		Theme:      d.Theme.View(),
		Ambient:    d.Ambient.View(),
		Timer:      d.Timer.View(),
		Stamina:    d.Stamina.View(),
		Notes:      d.Notes.View(),
		Flashcards: d.Flashcards.View(),
		Graves:     d.Graves.List(domain.ExamFilterAll),
	}
}

// Location is the zone grave timestamps are rendered in.
func (d *Desk) Location() *time.Location {
	return d.location
}

// Close stops every repeating task.
func (d *Desk) Close() {
	d.Timer.Close()
	d.Stamina.Close()
}
