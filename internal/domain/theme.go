package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Theme is one of the closed set of visual themes.
type Theme string

const (
	ThemeHorror Theme = "horror"
	ThemeDesi   Theme = "desi"
	ThemeNeon   Theme = "neon"

	// DefaultTheme applies when nothing valid is stored.
	DefaultTheme = ThemeHorror

	// ThemeClassPrefix marks theme classes on the root class list.
	ThemeClassPrefix = "theme-"
)

var themes = []Theme{ThemeHorror, ThemeDesi, ThemeNeon}

// Themes returns the selectable themes in display order.
func Themes() []Theme {
	return slices.Clone(themes)
}

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	return slices.Contains(themes, t)
}

// ClassName returns the root class that activates t.
func (t Theme) ClassName() string {
	return ThemeClassPrefix + string(t)
}

// ParseTheme converts s into a Theme.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.TrimSpace(s))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
	return t, nil
}

// ClassList is an ordered set of class names, the document root's class
// attribute.
type ClassList struct {
	classes []string
}

// NewClassList returns a list holding classes, ignoring blanks and duplicates.
func NewClassList(classes ...string) *ClassList {
	cl := &ClassList{}
	for _, c := range classes {
		cl.Add(c)
	}
	return cl
}

// Add appends class unless it is blank or already present.
func (cl *ClassList) Add(class string) {
	class = strings.TrimSpace(class)
	if class == "" || cl.Contains(class) {
		return
	}
	cl.classes = append(cl.classes, class)
}

// Remove drops class if present.
func (cl *ClassList) Remove(class string) {
	cl.classes = slices.DeleteFunc(cl.classes, func(c string) bool { return c == class })
}

// Contains reports whether class is present.
func (cl *ClassList) Contains(class string) bool {
	return slices.Contains(cl.classes, class)
}

// Classes returns a copy of the class names in order.
func (cl *ClassList) Classes() []string {
	return slices.Clone(cl.classes)
}

// String renders the list as a class attribute value.
func (cl *ClassList) String() string {
	return strings.Join(cl.classes, " ")
}

// ApplyTheme removes every theme class from cl and adds the class for t.
// Non-theme classes are left alone, so exactly one theme class remains.
func ApplyTheme(cl *ClassList, t Theme) {
	cl.classes = slices.DeleteFunc(cl.classes, func(c string) bool {
		return strings.HasPrefix(c, ThemeClassPrefix)
	})
	cl.Add(t.ClassName())
}

// ActiveTheme returns the theme named by the first theme class in cl.
func ActiveTheme(cl *ClassList) (Theme, bool) {
	for _, c := range cl.classes {
		if name, ok := strings.CutPrefix(c, ThemeClassPrefix); ok {
			return Theme(name), true
		}
	}
	return "", false
}
