package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var graveTime = time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)

func validInput() GraveInput {
	return GraveInput{Exam: "GATE", Topic: "Normalization", Type: "Concept", Cause: "mixed up 3NF and BCNF", Fix: "redo 10 problems"}
}

func TestNewGraveEntry(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	in := validInput()
	in.Topic = "  Normalization  "

	e, err := NewGraveEntry(in, id, graveTime)
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, ExamGATE, e.Exam)
	assert.Equal(t, "Normalization", e.Topic)
	assert.Equal(t, graveTime.Truncate(time.Millisecond), e.CreatedAt)
}

func TestGraveInputValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*GraveInput)
		field  string
	}{
		{"missing exam", func(in *GraveInput) { in.Exam = "" }, "Exam"},
		{"unknown exam", func(in *GraveInput) { in.Exam = "SAT" }, "Exam"},
		{"lowercase exam", func(in *GraveInput) { in.Exam = "gate" }, "Exam"},
		{"blank topic", func(in *GraveInput) { in.Topic = "   " }, "Topic"},
		{"blank type", func(in *GraveInput) { in.Type = "" }, "Type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := NewGraveEntry(in, uuid.New(), graveTime)
			require.ErrorIs(t, err, ErrInvalidGraveEntry)
			assert.ErrorIs(t, err, ErrValidation)

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}

	in := validInput()
	in.Cause, in.Fix = "", ""
	assert.NoError(t, in.Validate(), "cause and fix are optional")
}

func TestGraveyardOperations(t *testing.T) {
	t.Parallel()

	var g Graveyard
	exams := []Exam{ExamGATE, ExamLT, ExamGATE, ExamCLERK}
	for i, exam := range exams {
		in := validInput()
		in.Exam = string(exam)
		e, err := NewGraveEntry(in, uuid.New(), graveTime.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		g = g.Prepend(e)
	}

	require.Len(t, g, 4)
	assert.Equal(t, ExamCLERK, g[0].Exam, "newest first")

	assert.Len(t, g.Filter(""), 4)
	assert.Len(t, g.Filter(ExamFilterAll), 4)
	gate := g.Filter("GATE")
	require.Len(t, gate, 2)
	assert.True(t, gate[0].CreatedAt.After(gate[1].CreatedAt))
	assert.Empty(t, g.Filter("SAT"))

	target := g[1].ID
	after, ok := g.Remove(target)
	require.True(t, ok)
	assert.Len(t, after, 3)
	assert.Len(t, g, 4, "Remove must not mutate the receiver")
	_, found := after.Find(target)
	assert.False(t, found)

	same, ok := after.Remove(uuid.New())
	assert.False(t, ok)
	assert.Equal(t, after, same)
}

func TestGraveyardRoundTrip(t *testing.T) {
	t.Parallel()

	g := Graveyard{}
	for i := 0; i < 3; i++ {
		e, err := NewGraveEntry(validInput(), uuid.New(), graveTime.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		g = g.Prepend(e)
	}
	g[1].Topic = `<script>alert("x")</script> & “quotes”`

	raw, err := g.Encode()
	require.NoError(t, err)
	assert.Contains(t, raw, `"date":"2026-03-14T`)

	back, err := ParseGraveyard(raw)
	require.NoError(t, err)
	assert.Equal(t, g, back)
}

func TestParseGraveyard(t *testing.T) {
	t.Parallel()

	empty, err := Graveyard(nil).Encode()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)

	for _, raw := range []string{"", "  ", "null", "[]"} {
		g, err := ParseGraveyard(raw)
		require.NoError(t, err, raw)
		assert.NotNil(t, g)
		assert.Empty(t, g)
	}

	for _, raw := range []string{"{", `{"id":1}`, `[{"id":"not-a-uuid"}]`, "[1,2]"} {
		g, err := ParseGraveyard(raw)
		assert.ErrorIs(t, err, ErrInvalidFormat, raw)
		assert.Empty(t, g)
	}

	// Browser-written entries carry millisecond ISO timestamps and may omit
	// optional fields.
	g, err := ParseGraveyard(`[{"id":"1b4e28ba-2fa1-11d2-883f-0016d3cca427","exam":"LT","topic":"Pedagogy","type":"Recall","date":"2025-08-01T10:15:30.123Z"}]`)
	require.NoError(t, err)
	require.Len(t, g, 1)
	assert.Equal(t, ExamLT, g[0].Exam)
	assert.Empty(t, g[0].Cause)
	assert.Equal(t, 123*time.Millisecond, time.Duration(g[0].CreatedAt.Nanosecond()))
}

func TestFormatGraveDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("IST", 5*3600+1800)
	got := FormatGraveDate(graveTime, loc)
	assert.Equal(t, "Mar 14, 2026 14:56", got)
	assert.Equal(t, FormatGraveDate(graveTime, time.Local), FormatGraveDate(graveTime, nil))
}
