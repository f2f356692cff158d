package discovery

import (
	"time"

	"go-movie-community-backend/internal/domain"
)

func rated(ids ...string) []domain.Rating {
	out := make([]domain.Rating, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Rating{Movie: domain.MovieRef{ID: id, Title: "Title " + id}, Score: 7})
	}
	return out
}

func member(id string, genres []string, movies ...string) domain.CommunityMember {
	return domain.CommunityMember{
		ID:        id,
		Name:      "Member " + id,
		TopGenres: genres,
		RatedList: rated(movies...),
		RateCount: len(movies),
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func viewerWith(genres []domain.GenreCount, movies ...string) domain.Viewer {
	return domain.Viewer{ID: "viewer", Ratings: rated(movies...), GenreCounts: genres}
}
