// Package discovery scores, filters, sorts and paginates community members
// for a viewing user. Everything here is pure and synchronous: callers pass
// snapshots they already loaded and get fresh values back.
package discovery

import "go-movie-community-backend/internal/domain"

// RatingSet returns the unique movie ids of a rating list. A nil list gives
// an empty set.
func RatingSet(ratings []domain.Rating) map[string]struct{} {
	set := make(map[string]struct{}, len(ratings))
	for _, r := range ratings {
		set[r.Movie.ID] = struct{}{}
	}
	return set
}
