package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/events"
	"github.com/phrazzld/studydesk/internal/store"
)

// GravesPayload is carried by graves.changed events.
type GravesPayload struct {
	Count int `json:"count"`
}

// GraveyardService keeps the log of past mistakes, newest first. The whole
// collection is rewritten on every change.
type GraveyardService struct {
	component
	graves domain.Graveyard
	newID  func() uuid.UUID
}

// NewGraveyardService returns an empty graveyard.
func NewGraveyardService(d Deps) *GraveyardService {
	return &GraveyardService{
		component: newComponent("graveyard", d),
		graves:    domain.Graveyard{},
		newID:     uuid.New,
	}
}

// Load reads the persisted collection. Malformed data yields an empty
// graveyard.
func (s *GraveyardService) Load(ctx context.Context) int {
	return do(s.loop, func() int {
		s.graves = domain.Graveyard{}
		raw, ok := s.read(ctx, store.KeyGraves)
		if !ok {
			return 0
		}
		graves, err := domain.ParseGraveyard(raw)
		if err != nil {
			s.log(ctx).Warn("discarding malformed graveyard",
				slog.String("error", err.Error()))
			return 0
		}
		s.graves = graves
		return len(graves)
	})
}

// Add validates in and prepends a new entry stamped with the loop clock.
// Invalid input returns ErrInvalidGraveEntry and changes nothing.
func (s *GraveyardService) Add(ctx context.Context, in domain.GraveInput) (domain.GraveEntry, error) {
	return do2(s.loop, func() (domain.GraveEntry, error) {
		entry, err := domain.NewGraveEntry(in, s.newID(), s.loop.Now())
		if err != nil {
			return domain.GraveEntry{}, err
		}
		s.graves = s.graves.Prepend(entry)
		s.save(ctx)
		s.log(ctx).Debug("grave added",
			slog.String("id", entry.ID.String()),
			slog.String("exam", string(entry.Exam)))
		return entry, nil
	})
}

// List returns the entries for filter, newest first. "" and "all" select
// every entry.
func (s *GraveyardService) List(filter string) []domain.GraveEntry {
	return do(s.loop, func() []domain.GraveEntry {
		return s.graves.Filter(filter)
	})
}

// Delete removes the entry with id. A missing id returns ErrGraveNotFound
// and writes nothing.
func (s *GraveyardService) Delete(ctx context.Context, id uuid.UUID) error {
	var err error
	s.loop.Do(func() {
		entry, ok := s.graves.Find(id)
		if !ok {
			err = fmt.Errorf("%w: %s", ErrGraveNotFound, id)
			return
		}
		s.graves, _ = s.graves.Remove(id)
		s.save(ctx)
		s.log(ctx).Info("grave entry deleted",
			slog.String("id", entry.ID.String()),
			slog.String("exam", string(entry.Exam)))
	})
	return err
}

// Count returns the number of entries.
func (s *GraveyardService) Count() int {
	return do(s.loop, func() int { return len(s.graves) })
}

func (s *GraveyardService) save(ctx context.Context) {
	raw, err := s.graves.Encode()
	if err != nil {
		s.log(ctx).Error("failed to encode graveyard", slog.String("error", err.Error()))
		return
	}
	s.persist(ctx, store.KeyGraves, raw)
	s.emit(ctx, events.GravesChanged, GravesPayload{Count: len(s.graves)})
}
