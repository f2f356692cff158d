package discovery

import (
	"testing"

	"go-movie-community-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTopGenres(t *testing.T) {
	tests := []struct {
		name     string
		counts   []domain.GenreCount
		favorite string
		want     []string
	}{
		{
			name: "ranks by count and keeps three",
			counts: []domain.GenreCount{
				{Genre: "Drama", Count: 2},
				{Genre: " Ação ", Count: 9},
				{Genre: "Comédia", Count: 5},
				{Genre: "Terror", Count: 1},
			},
			want: []string{"Ação", "Comédia", "Drama"},
		},
		{
			name: "keeps input order on equal counts",
			counts: []domain.GenreCount{
				{Genre: "Drama", Count: 3},
				{Genre: "Terror", Count: 3},
			},
			favorite: "Romance",
			want:     []string{"Drama", "Terror"},
		},
		{
			name:     "falls back to the favorite genre",
			favorite: "  Romance ",
			want:     []string{"Romance"},
		},
		{
			name: "returns an empty list without data",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopGenres(tt.counts, tt.favorite))
		})
	}
}

func TestTopGenresDoesNotReorderInput(t *testing.T) {
	counts := []domain.GenreCount{{Genre: "Drama", Count: 1}, {Genre: "Ação", Count: 4}}
	_ = TopGenres(counts, "")
	assert.Equal(t, "Drama", counts[0].Genre)
}
