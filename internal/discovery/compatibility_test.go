package discovery

import (
	"fmt"
	"testing"

	"go-movie-community-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCompatibilityWorkedExample(t *testing.T) {
	viewer := viewerWith([]domain.GenreCount{
		{Genre: "Drama", Count: 5},
		{Genre: "Ação", Count: 3},
	}, "m1", "m2", "m3")
	candidate := member("c1", []string{"Ação", "Comédia"}, "m2", "m3", "m4")

	score := Breakdown(NewProfile(viewer), candidate)

	assert.Equal(t, 67, score.MovieScore)
	assert.Equal(t, 50, score.GenreScore)
	assert.Equal(t, 69, score.Compatibility)
	assert.Equal(t, []string{"m2", "m3"}, score.CommonMovieIDs)
	assert.Equal(t, []string{"Ação"}, score.MatchedGenres)
}

func TestCompatibilityViewerWithoutRatings(t *testing.T) {
	movies := make([]string, 50)
	for i := range movies {
		movies[i] = fmt.Sprintf("m%d", i)
	}
	viewer := viewerWith([]domain.GenreCount{{Genre: "Drama", Count: 1}})
	candidate := member("c1", []string{"Terror"}, movies...)

	score := Breakdown(NewProfile(viewer), candidate)
	assert.Equal(t, DefaultScore, score.Compatibility)
	assert.Equal(t, DefaultScore, score.MovieScore)
	assert.Equal(t, DefaultScore, score.GenreScore)
}

func TestCompatibilityMovieOverlap(t *testing.T) {
	t.Run("Identical sets score 100", func(t *testing.T) {
		score := Breakdown(NewProfile(viewerWith(nil, "m1", "m2")), member("c", nil, "m2", "m1"))
		assert.Equal(t, 100, score.MovieScore)
	})

	t.Run("Disjoint sets score 0", func(t *testing.T) {
		score := Breakdown(NewProfile(viewerWith(nil, "m1", "m2")), member("c", nil, "m3"))
		assert.Equal(t, 0, score.MovieScore)
	})

	t.Run("Duplicate ratings count once", func(t *testing.T) {
		score := Breakdown(NewProfile(viewerWith(nil, "m1", "m1", "m2")), member("c", nil, "m1", "m2"))
		assert.Equal(t, 100, score.MovieScore)
	})
}

func TestCompatibilityGenreOverlap(t *testing.T) {
	profile := NewProfile(viewerWith([]domain.GenreCount{{Genre: "drama", Count: 1}}, "m1"))

	t.Run("Matches case-insensitively", func(t *testing.T) {
		score := Breakdown(profile, member("c", []string{" DRAMA"}, "m1"))
		assert.Equal(t, 100, score.GenreScore)
		assert.Equal(t, []string{"DRAMA"}, score.MatchedGenres)
	})

	t.Run("Only the first three genres count", func(t *testing.T) {
		score := Breakdown(profile, member("c", []string{"Terror", "Ação", "Comédia", "Drama"}, "m1"))
		assert.Equal(t, 0, score.GenreScore)
	})

	t.Run("Both sides empty use the default", func(t *testing.T) {
		score := Breakdown(NewProfile(viewerWith(nil, "m1")), member("c", nil, "m1"))
		assert.Equal(t, DefaultScore, score.GenreScore)
		// round(100*0.8 + 85*0.3) = 105.5 -> clamped
		assert.Equal(t, 100, score.Compatibility)
	})

	t.Run("One side empty scores 0", func(t *testing.T) {
		score := Breakdown(profile, member("c", nil, "m9"))
		assert.Equal(t, 0, score.GenreScore)
		assert.Equal(t, 0, score.Compatibility)
	})
}

func TestCompatibilityClampsAtTop(t *testing.T) {
	viewer := viewerWith([]domain.GenreCount{{Genre: "Drama", Count: 1}}, "m1")
	assert.Equal(t, 100, Compatibility(NewProfile(viewer), member("c", []string{"Drama"}, "m1")))
}

func TestCompatibilityAlwaysInRange(t *testing.T) {
	genres := [][]string{nil, {"Drama"}, {"Ação", "Drama"}, {"Terror", "Comédia", "Drama", "Romance"}}
	movieSets := [][]string{nil, {"m1"}, {"m1", "m2", "m3"}, {"m4", "m5"}}

	for _, vg := range genres {
		for _, vm := range movieSets {
			counts := make([]domain.GenreCount, 0, len(vg))
			for i, g := range vg {
				counts = append(counts, domain.GenreCount{Genre: g, Count: len(vg) - i})
			}
			profile := NewProfile(viewerWith(counts, vm...))
			for _, cg := range genres {
				for _, cm := range movieSets {
					got := Compatibility(profile, member("c", cg, cm...))
					assert.GreaterOrEqual(t, got, 0)
					assert.LessOrEqual(t, got, 100)
					// Idempotent
					assert.Equal(t, got, Compatibility(profile, member("c", cg, cm...)))
				}
			}
		}
	}
}

func TestCompatibilityHandlesEmptyMember(t *testing.T) {
	profile := NewProfile(viewerWith(nil, "m1"))
	assert.NotPanics(t, func() {
		_ = Compatibility(profile, domain.CommunityMember{})
	})
}
