package discovery

import (
	"sort"

	"go-movie-community-backend/internal/domain"
)

// ParseSortKey maps the query value to a SortKey. Empty selects compatibility.
func ParseSortKey(s string) (domain.SortKey, bool) {
	switch domain.SortKey(s) {
	case "", domain.SortByCompatibility:
		return domain.SortByCompatibility, true
	case domain.SortByRatingCount:
		return domain.SortByRatingCount, true
	case domain.SortByRecency:
		return domain.SortByRecency, true
	}
	return "", false
}

// sortMembers orders members in place, descending and stable. Unknown keys
// leave the order untouched.
func sortMembers(members []domain.CommunityMember, key domain.SortKey, score func(domain.CommunityMember) int) {
	var less func(i, j int) bool
	switch key {
	case domain.SortByCompatibility:
		less = func(i, j int) bool { return score(members[i]) > score(members[j]) }
	case domain.SortByRatingCount:
		less = func(i, j int) bool { return members[i].RateCount > members[j].RateCount }
	case domain.SortByRecency:
		less = func(i, j int) bool { return members[i].CreatedAt.After(members[j].CreatedAt) }
	default:
		return
	}
	sort.SliceStable(members, less)
}
