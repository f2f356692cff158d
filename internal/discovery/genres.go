package discovery

import (
	"sort"
	"strings"

	"go-movie-community-backend/internal/domain"

	"golang.org/x/text/cases"
)

// MaxTopGenres is how many genres describe a user's taste.
const MaxTopGenres = 3

// TopGenres ranks genre counts by descending count and keeps the first
// MaxTopGenres labels. Without counts it falls back to the favorite genre.
func TopGenres(counts []domain.GenreCount, favorite string) []string {
	if len(counts) > 0 {
		ranked := make([]domain.GenreCount, len(counts))
		copy(ranked, counts)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Count > ranked[j].Count
		})

		n := min(len(ranked), MaxTopGenres)
		top := make([]string, 0, n)
		for _, gc := range ranked[:n] {
			top = append(top, strings.TrimSpace(gc.Genre))
		}
		return top
	}

	if fav := strings.TrimSpace(favorite); fav != "" {
		return []string{fav}
	}
	return []string{}
}

// headGenres keeps the first MaxTopGenres labels, trimmed.
func headGenres(genres []string) []string {
	n := min(len(genres), MaxTopGenres)
	out := make([]string, 0, n)
	for _, g := range genres[:n] {
		out = append(out, strings.TrimSpace(g))
	}
	return out
}

// fold maps s to its case folded form for case-insensitive comparison.
// A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
