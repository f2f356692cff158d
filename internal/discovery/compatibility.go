package discovery

import (
	"math"
	"sort"

	"go-movie-community-backend/internal/domain"
)

const (
	// DefaultScore is used whenever there is not enough data to compare.
	DefaultScore = 85

	// The weights add up to 1.1, so a perfect match lands above 100 and is
	// clamped. Rebasing them shifts every stored expectation.
	MovieWeight = 0.8
	GenreWeight = 0.3
)

// Profile is the viewer side of every comparison, extracted once per pass.
type Profile struct {
	ID      string
	Version int64
	Movies  map[string]struct{}
	Genres  []string
}

// NewProfile extracts the viewer's rating set and top genres.
func NewProfile(v domain.Viewer) Profile {
	return Profile{
		ID:      v.ID,
		Version: v.DataVersion,
		Movies:  RatingSet(v.Ratings),
		Genres:  TopGenres(v.GenreCounts, v.FavoriteGenre),
	}
}

// Compatibility scores a member against the viewer, 0 to 100.
func Compatibility(p Profile, c domain.CommunityMember) int {
	return Breakdown(p, c).Compatibility
}

// Breakdown scores a member and reports the sub-scores behind it. The
// member's TopGenres are used as stored.
func Breakdown(p Profile, c domain.CommunityMember) domain.CandidateScore {
	viewerGenres := headGenres(p.Genres)
	candidateGenres := headGenres(c.TopGenres)

	score := domain.CandidateScore{
		CandidateID:     c.ID,
		Compatibility:   DefaultScore,
		MovieScore:      DefaultScore,
		GenreScore:      DefaultScore,
		CommonMovieIDs:  []string{},
		MatchedGenres:   []string{},
		ViewerGenres:    viewerGenres,
		CandidateGenres: candidateGenres,
	}

	// A viewer without history is neither penalized nor rewarded.
	if len(p.Movies) == 0 {
		return score
	}

	candidateMovies := RatingSet(c.RatedList)
	for id := range p.Movies {
		if _, ok := candidateMovies[id]; ok {
			score.CommonMovieIDs = append(score.CommonMovieIDs, id)
		}
	}
	sort.Strings(score.CommonMovieIDs)

	if denom := max(len(p.Movies), len(candidateMovies)); denom > 0 {
		score.MovieScore = percent(len(score.CommonMovieIDs), denom)
	}

	if denom := max(len(viewerGenres), len(candidateGenres)); denom > 0 {
		folded := make(map[string]struct{}, len(viewerGenres))
		for _, g := range viewerGenres {
			folded[fold(g)] = struct{}{}
		}
		for _, g := range candidateGenres {
			if _, ok := folded[fold(g)]; ok {
				score.MatchedGenres = append(score.MatchedGenres, g)
			}
		}
		score.GenreScore = percent(len(score.MatchedGenres), denom)
	}

	final := int(math.Round(float64(score.MovieScore)*MovieWeight + float64(score.GenreScore)*GenreWeight))
	score.Compatibility = clamp(final, 0, 100)
	return score
}

func percent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
