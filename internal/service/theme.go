package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/events"
	"github.com/phrazzld/studydesk/internal/store"
)

// ThemeView is the theme controller state shown to the page.
type ThemeView struct {
	Theme     domain.Theme   `json:"theme"`
	RootClass string         `json:"root_class"`
	Themes    []domain.Theme `json:"themes"`
}

// ThemeService owns the document root class list.
type ThemeService struct {
	component
	root     *domain.ClassList
	fallback domain.Theme
	theme    domain.Theme
}

// NewThemeService returns a controller whose root carries the fallback
// theme until Load runs. Invalid fallbacks are replaced by domain.DefaultTheme.
func NewThemeService(d Deps, fallback domain.Theme) *ThemeService {
	if !fallback.Valid() {
		fallback = domain.DefaultTheme
	}
	s := &ThemeService{
		component: newComponent("theme", d),
		root:      domain.NewClassList(),
		fallback:  fallback,
	}
	s.apply(fallback)
	return s
}

// Load applies the persisted theme. Missing or unknown values fall back to
// the default without being written back.
func (s *ThemeService) Load(ctx context.Context) ThemeView {
	return do(s.loop, func() ThemeView {
		theme := s.fallback
		if raw, ok := s.read(ctx, store.KeyTheme); ok {
			if parsed, err := domain.ParseTheme(raw); err == nil {
				theme = parsed
			} else {
				s.log(ctx).Warn("ignoring unknown persisted theme",
					slog.String("value", raw))
			}
		}
		s.apply(theme)
		return s.view()
	})
}

// Select validates, applies and persists a theme.
func (s *ThemeService) Select(ctx context.Context, name string) (ThemeView, error) {
	theme, err := domain.ParseTheme(name)
	if err != nil {
		return ThemeView{}, err
	}
	return do(s.loop, func() ThemeView {
		s.apply(theme)
		s.persist(ctx, store.KeyTheme, string(theme))
		view := s.view()
		s.emit(ctx, events.ThemeChanged, view)
		s.log(ctx).Debug("theme selected", slog.String("theme", string(theme)))
		return view
	}), nil
}

// View returns the current state.
func (s *ThemeService) View() ThemeView {
	return do(s.loop, s.view)
}

// RootClasses returns the root class list entries.
func (s *ThemeService) RootClasses() []string {
	return do(s.loop, s.root.Classes)
}

func (s *ThemeService) apply(theme domain.Theme) {
	domain.ApplyTheme(s.root, theme)
	s.theme = theme
}

func (s *ThemeService) view() ThemeView {
	return ThemeView{
		Theme:     s.theme,
		RootClass: s.root.String(),
		Themes:    domain.Themes(),
	}
}
