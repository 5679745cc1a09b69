package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Exam identifies which exam a mistake was made for.
type Exam string

const (
	ExamGATE  Exam = "GATE"
	ExamCLERK Exam = "CLERK"
	ExamLT    Exam = "LT"

	// ExamFilterAll selects every entry.
	ExamFilterAll = "all"
)

// Exams returns the known exams in display order.
func Exams() []Exam {
	return []Exam{ExamGATE, ExamCLERK, ExamLT}
}

// GraveEntry is one logged mistake. The JSON field names are the persisted
// shape of the graveyard collection.
type GraveEntry struct {
	ID        uuid.UUID `json:"id"`
	Exam      Exam      `json:"exam"`
	Topic     string    `json:"topic"`
	Type      string    `json:"type"`
	Cause     string    `json:"cause"`
	Fix       string    `json:"fix"`
	CreatedAt time.Time `json:"date"`
}

// GraveInput is the user-submitted form for a new entry.
type GraveInput struct {
	Exam  string `json:"exam"  validate:"required,oneof=GATE CLERK LT"`
	Topic string `json:"topic" validate:"required"`
	Type  string `json:"type"  validate:"required"`
	Cause string `json:"cause"`
	Fix   string `json:"fix"`
}

var graveValidator = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims surrounding whitespace from every field.
func (in GraveInput) Normalize() GraveInput {
	return GraveInput{
		Exam:  strings.TrimSpace(in.Exam),
		Topic: strings.TrimSpace(in.Topic),
		Type:  strings.TrimSpace(in.Type),
		Cause: strings.TrimSpace(in.Cause),
		Fix:   strings.TrimSpace(in.Fix),
	}
}

// Validate checks the normalized input. Failures wrap ErrInvalidGraveEntry
// and the validator's field errors.
func (in GraveInput) Validate() error {
	if err := graveValidator.Struct(in.Normalize()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGraveEntry, err)
	}
	return nil
}

// NewGraveEntry validates in and builds an entry with the given id and time.
// The timestamp is kept at millisecond precision in UTC.
func NewGraveEntry(in GraveInput, id uuid.UUID, now time.Time) (GraveEntry, error) {
	if err := in.Validate(); err != nil {
		return GraveEntry{}, err
	}
	in = in.Normalize()
	return GraveEntry{
		ID:        id,
		Exam:      Exam(in.Exam),
		Topic:     in.Topic,
		Type:      in.Type,
		Cause:     in.Cause,
		Fix:       in.Fix,
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}, nil
}

// Graveyard is the entry collection, newest first.
type Graveyard []GraveEntry

// Prepend returns a new graveyard with e in front.
func (g Graveyard) Prepend(e GraveEntry) Graveyard {
	out := make(Graveyard, 0, len(g)+1)
	out = append(out, e)
	return append(out, g...)
}

// Filter returns the entries for exam, preserving order. An empty filter or
// ExamFilterAll returns every entry; an unknown exam returns none.
func (g Graveyard) Filter(filter string) []GraveEntry {
	if filter == "" || filter == ExamFilterAll {
		return slices.Clone([]GraveEntry(g))
	}
	out := make([]GraveEntry, 0, len(g))
	for _, e := range g {
		if string(e.Exam) == filter {
			out = append(out, e)
		}
	}
	return out
}

// Remove returns a new graveyard without the entry id and whether one was
// found.
func (g Graveyard) Remove(id uuid.UUID) (Graveyard, bool) {
	i := slices.IndexFunc(g, func(e GraveEntry) bool { return e.ID == id })
	if i < 0 {
		return g, false
	}
	out := make(Graveyard, 0, len(g)-1)
	out = append(out, g[:i]...)
	return append(out, g[i+1:]...), true
}

// Find returns the entry with id.
func (g Graveyard) Find(id uuid.UUID) (GraveEntry, bool) {
	i := slices.IndexFunc(g, func(e GraveEntry) bool { return e.ID == id })
	if i < 0 {
		return GraveEntry{}, false
	}
	return g[i], true
}

// Encode serializes the collection as a JSON array. An empty graveyard
// encodes as [].
func (g Graveyard) Encode() (string, error) {
	if g == nil {
		g = Graveyard{}
	}
	b, err := json.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseGraveyard decodes a persisted collection. Blank input and JSON null
// yield an empty graveyard; anything else that is not an array of entries is
// ErrInvalidFormat.
func ParseGraveyard(raw string) (Graveyard, error) {
	if strings.TrimSpace(raw) == "" {
		return Graveyard{}, nil
	}
	var g Graveyard
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return Graveyard{}, fmt.Errorf("%w: graves at offset %d: %w", ErrInvalidFormat, syntaxErr.Offset, err)
		}
		return Graveyard{}, fmt.Errorf("%w: graves: %w", ErrInvalidFormat, err)
	}
	if g == nil {
		g = Graveyard{}
	}
	return g, nil
}

// FormatGraveDate renders an entry timestamp for server-side display.
func FormatGraveDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("Jan 2, 2006 15:04")
}
