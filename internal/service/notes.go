package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"unicode/utf8"

	"github.com/phrazzld/studydesk/internal/events"
	"github.com/phrazzld/studydesk/internal/store"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// NotesView is the notes state shown to the page.
type NotesView struct {
	Text  string `json:"text"`
	Runes int    `json:"runes"`
}

// NotesService autosaves the free-text notes on every change.
type NotesService struct {
	component
	text     string
	markdown goldmark.Markdown
}

// NewNotesService returns an empty notes pad.
func NewNotesService(d Deps) *NotesService {
	return &NotesService{
		component: newComponent("notes", d),
		// Raw HTML is left out of the rendered output: goldmark only passes
		// it through with html.WithUnsafe.
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Load reads the persisted notes; missing notes are empty.
func (s *NotesService) Load(ctx context.Context) NotesView {
	return do(s.loop, func() NotesView {
		s.text, _ = s.read(ctx, store.KeyNotes)
		return s.view()
	})
}

// Save stores text verbatim.
func (s *NotesService) Save(ctx context.Context, text string) NotesView {
	return do(s.loop, func() NotesView {
		s.text = text
		s.persist(ctx, store.KeyNotes, text)
		view := s.view()
		s.emit(ctx, events.NotesSaved, view)
		return view
	})
}

// View returns the current state.
func (s *NotesService) View() NotesView {
	return do(s.loop, s.view)
}

// Preview renders text as Markdown. The result is safe to embed in a page.
func (s *NotesService) Preview(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("render notes preview: %w", err)
	}
	// #nosec G203 -- goldmark output without WithUnsafe escapes raw HTML
	return template.HTML(buf.String()), nil
}

func (s *NotesService) view() NotesView {
	return NotesView{Text: s.text, Runes: utf8.RuneCountInString(s.text)}
}
