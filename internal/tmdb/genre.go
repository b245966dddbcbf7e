package tmdb

import (
	"strings"

	"golang.org/x/text/cases"
)

// FindGenre looks a genre up by name under Unicode case folding.
func FindGenre(genres []Genre, name string) (Genre, bool) {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(name))
	for _, g := range genres {
		if fold.String(g.Name) == want {
			return g, true
		}
	}
	return Genre{}, false
}
