package web_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/service"
	"github.com/phrazzld/studydesk/internal/web"
)

func cardView(question, answer string, flipped bool) service.CardView {
	return service.CardView{
		Deck:     "dbms",
		Title:    "DBMS",
		Index:    1,
		Count:    4,
		Counter:  "2 / 4",
		Question: question,
		Answer:   answer,
		Flipped:  flipped,
	}
}

func TestCardPartialEscapesText(t *testing.T) {
	t.Parallel()
	tmpl, err := web.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.Card(&buf, cardView("<script>alert(1)</script>", "a & b", false)))
	out := buf.String()

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, out, "a &amp; b")
	assert.Contains(t, out, "Focus, then flip.")
	assert.Contains(t, out, "<h3>Answer</h3>")
	assert.Contains(t, out, "2 / 4")
	assert.NotContains(t, out, "flipped")
}

func TestCardPartialMarksFlipped(t *testing.T) {
	t.Parallel()
	tmpl := web.MustLoad()

	var buf bytes.Buffer
	require.NoError(t, tmpl.Card(&buf, cardView("Q", "A", true)))
	assert.Contains(t, buf.String(), `class="flip-card flipped"`)
}

func TestGravesPartial(t *testing.T) {
	t.Parallel()
	tmpl := web.MustLoad()
	created := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)
	idA := uuid.MustParse("6f1c2b1e-1d7a-4c55-9a53-0c7c1f1f0a01")
	idB := uuid.MustParse("6f1c2b1e-1d7a-4c55-9a53-0c7c1f1f0a02")

	t.Run("optional lines only when present", func(t *testing.T) {
		t.Parallel()
		entries := []domain.GraveEntry{
			{ID: idA, Exam: domain.ExamGATE, Topic: "<b>Joins</b>", Type: "Concept", Fix: "redo PYQs", CreatedAt: created},
			{ID: idB, Exam: domain.ExamLT, Topic: "Tenses", Type: "Silly", CreatedAt: created},
		}
		var buf bytes.Buffer
		require.NoError(t, tmpl.Graves(&buf, web.GravesData{Entries: entries, Location: time.UTC}))
		out := buf.String()

		assert.Contains(t, out, "&lt;b&gt;Joins&lt;/b&gt;")
		assert.Equal(t, 1, strings.Count(out, "Ritual:"))
		assert.NotContains(t, out, "Cause:")
		assert.Contains(t, out, "Mar 5, 2024 14:07")
		assert.Contains(t, out, `data-id="`+idB.String()+`"`)
		assert.Equal(t, 2, strings.Count(out, `class="tombstone"`))
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, tmpl.Graves(&buf, web.GravesData{Location: time.UTC}))
		assert.Contains(t, buf.String(), "No fallen errors yet.")
	})
}

func TestPageRendersState(t *testing.T) {
	t.Parallel()
	tmpl := web.MustLoad()

	snap := service.Snapshot{
		Theme: service.ThemeView{
			Theme:     domain.ThemeNeon,
			RootClass: "dark theme-neon",
			Themes:    domain.Themes(),
		},
		Ambient: service.AmbientView{Label: "Ambient: Off", AriaPressed: "false", Available: true},
		Timer: service.TimerView{
			TotalSeconds:   1500,
			Remaining:      1500,
			Display:        "25:00",
			ButtonLabel:    "Start",
			SessionMinutes: 25,
		},
		Stamina:    service.StaminaView{Value: 91.4, Percent: 91, FillWidth: "91.4%"},
		Notes:      service.NotesView{Text: "</textarea><script>x</script>"},
		Flashcards: cardView("Q", "A", false),
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.Page(&buf, web.PageData{
		Desk:           snap,
		Exams:          domain.Exams(),
		SessionOptions: []int{25, 50},
		Location:       time.UTC,
		AssetVer:       "test",
	}))
	out := buf.String()

	assert.Contains(t, out, `<html lang="en" class="dark theme-neon">`)
	assert.Contains(t, out, `<option value="neon" selected>`)
	assert.Contains(t, out, "25:00")
	assert.Contains(t, out, "width: 91.4%")
	assert.Contains(t, out, "91%")
	assert.Contains(t, out, `aria-pressed="false"`)
	assert.Contains(t, out, `<option value="25" selected>`)
	assert.NotContains(t, out, "<script>x</script>")
	assert.Contains(t, out, `id="initialState"`)
}

func TestStaticServesAssets(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.StripPrefix("/static/", web.Static()))
	defer srv.Close()

	for _, name := range []string{"app.js", "app.css"} {
		resp, err := http.Get(srv.URL + "/static/" + name)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, name)
	}
}
