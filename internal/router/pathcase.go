package router

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// pathFolder rewrites request paths so that static segments match the
// registered templates regardless of case. Parameter segments keep the
// client's spelling.
type pathFolder struct {
	// templates are split echo paths, most static segments first.
	templates [][]string
}

func newPathFolder(paths []string) *pathFolder {
	f := &pathFolder{}
	seen := make(map[string]bool, len(paths))

	for _, path := range paths {
		if seen[path] {
			continue
		}
		seen[path] = true
		f.templates = append(f.templates, strings.Split(path, "/"))
	}

	// Stable insertion sort keeps table order among equally specific paths.
	for i := 1; i < len(f.templates); i++ {
		for j := i; j > 0 && staticCount(f.templates[j]) > staticCount(f.templates[j-1]); j-- {
			f.templates[j], f.templates[j-1] = f.templates[j-1], f.templates[j]
		}
	}

	return f
}

func staticCount(segments []string) int {
	n := 0
	for _, s := range segments {
		if !strings.HasPrefix(s, ":") {
			n++
		}
	}
	return n
}

// fold returns path with its static segments replaced by the canonical
// spelling of the most specific matching template, or path unchanged.
func (f *pathFolder) fold(path string) string {
	if path == "" {
		return path
	}

	segments := strings.Split(path, "/")
	for _, template := range f.templates {
		if !matchesFold(template, segments) {
			continue
		}

		folded := make([]string, len(segments))
		for i, s := range template {
			if strings.HasPrefix(s, ":") {
				folded[i] = segments[i]
			} else {
				folded[i] = s
			}
		}
		return strings.Join(folded, "/")
	}

	return path
}

func matchesFold(template, segments []string) bool {
	if len(template) != len(segments) {
		return false
	}
	for i, s := range template {
		if strings.HasPrefix(s, ":") {
			if segments[i] == "" {
				return false
			}
			continue
		}
		if !strings.EqualFold(s, segments[i]) {
			return false
		}
	}
	return true
}

// Middleware must be registered with echo's Pre so it runs before routing.
func (f *pathFolder) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := c.Request().URL
			u.Path = f.fold(u.Path)
			if u.RawPath != "" {
				u.RawPath = f.fold(u.RawPath)
			}
			return next(c)
		}
	}
}
