// Package web holds the page template, the HTML partials re-rendered after
// each change, and the static assets of the study desk page. Every value is
// inserted through html/template, so card and grave text is escaped for its
// context.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/service"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Template names.
const (
	PageTemplate    = "page"
	CardPartial     = "card"
	GravesPartial   = "graves"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// PageData is the data for the full page.
type PageData struct {
	Desk           service.Snapshot
	Exams          []domain.Exam
	SessionOptions []int
	Location       *time.Location
	AssetVer       string
}

// GravesData is the data for the graveyard list partial.
type GravesData struct {
	Entries  []domain.GraveEntry
	Location *time.Location
}

// Templates holds the parsed page and partials.
type Templates struct {
	set *template.Template
}

// Load parses the embedded templates.
func Load() (*Templates, error) {
	funcMap := template.FuncMap{
		"graveDate": func(t time.Time, loc *time.Location) string {
			return domain.FormatGraveDate(t, loc)
		},
		"isoTime": func(t time.Time) string {
			return t.UTC().Format(time.RFC3339Nano)
		},
		"json": func(v any) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			// #nosec G203 -- json.Marshal escapes <, > and & for script context
			return template.JS(b), nil
		},
		"graves": func(entries []domain.GraveEntry, loc *time.Location) GravesData {
			return GravesData{Entries: entries, Location: loc}
		},
		"selected": func(a, b string) bool { return a == b },
	}

	set, err := template.New("web").Funcs(funcMap).ParseFS(templateFS,
		"templates/*.html",
		"templates/partials/*.html",
	)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, name := range []string{PageTemplate, CardPartial, GravesPartial} {
		if set.Lookup(name) == nil {
			return nil, fmt.Errorf("template %q not defined", name)
		}
	}
	return &Templates{set: set}, nil
}

// MustLoad is Load for program start-up.
func MustLoad() *Templates {
	t, err := Load()
	if err != nil {
		// ALLOW-PANIC: embedded templates are fixed at build time
		panic(err)
	}
	return t
}

// Page renders the full page.
func (t *Templates) Page(w io.Writer, data PageData) error {
	return t.set.ExecuteTemplate(w, PageTemplate, data)
}

// Card renders the flashcard partial.
func (t *Templates) Card(w io.Writer, view service.CardView) error {
	return t.set.ExecuteTemplate(w, CardPartial, view)
}

// Graves renders the graveyard list partial.
func (t *Templates) Graves(w io.Writer, data GravesData) error {
	return t.set.ExecuteTemplate(w, GravesPartial, data)
}

// Static serves the embedded assets.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// ALLOW-PANIC: the static directory is embedded
		panic(err)
	}
	return http.FileServerFS(sub)
}
