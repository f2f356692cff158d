package discovery

import (
	"slices"
	"strings"

	"go-movie-community-backend/internal/domain"
)

// FilterParams are the community page predicates. Zero values pass everything.
type FilterParams struct {
	Search           string
	Genres           []string
	MinCompatibility int
	MinRatings       int
}

// MatchesText reports whether search is a case-insensitive substring of the
// member's name, one of their top genres, or a title they rated.
func MatchesText(c domain.CommunityMember, search string) bool {
	if search == "" {
		return true
	}
	needle := fold(search)
	if strings.Contains(fold(c.Name), needle) {
		return true
	}
	for _, g := range c.TopGenres {
		if strings.Contains(fold(g), needle) {
			return true
		}
	}
	for _, r := range c.RatedList {
		if strings.Contains(fold(r.Movie.Title), needle) {
			return true
		}
	}
	return false
}

// MatchesGenres reports whether any selected genre is one of the member's
// top genres. The comparison is exact and case-sensitive, unlike the scorer.
func MatchesGenres(c domain.CommunityMember, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, g := range selected {
		if slices.Contains(c.TopGenres, g) {
			return true
		}
	}
	return false
}
