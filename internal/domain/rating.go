package domain

import (
	"context"
	"time"
)

// Score bounds for a rating
const (
	MinScore = 1
	MaxScore = 10
)

// MovieRef is the movie as embedded in a rating.
type MovieRef struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	PosterURL     string     `json:"posterUrl,omitempty"`
	ReleaseDate   *time.Time `json:"releaseDate,omitempty"`
	AverageRating float64    `json:"averageRating"`
}

type Rating struct {
	UserID    string    `json:"userId,omitempty"`
	Movie     MovieRef  `json:"movie"`
	Score     int       `json:"rate"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MovieReview is a rating shown on a movie page, with its author.
type MovieReview struct {
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserPhoto string    `json:"userPhoto,omitempty"`
	Score     int       `json:"rate"`
	Comment   string    `json:"comment,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GenreCount is how many of a user's rated movies carry a genre.
type GenreCount struct {
	Genre string `json:"genero"`
	Count int    `json:"quantidade"`
}

type RateMovieRequest struct {
	Score   int    `json:"rate" validate:"required,min=1,max=10"`
	Comment string `json:"comment" validate:"max=1000"`
}

type RatingRepository interface {
	// Upsert writes the rating, recomputes the movie aggregate and bumps the
	// user's ratings version in one transaction.
	Upsert(ctx context.Context, userID, movieID string, score int, comment string) (*Rating, error)
	Delete(ctx context.Context, userID, movieID string) error
	ListByUser(ctx context.Context, userID string) ([]Rating, error)
	ListByMovie(ctx context.Context, movieID string, limit, offset int) ([]MovieReview, int64, error)
	GenreCounts(ctx context.Context, userID string) ([]GenreCount, error)
}

type RatingUsecase interface {
	RateMovie(ctx context.Context, movieID string, req RateMovieRequest) (*Rating, error)
	DeleteRating(ctx context.Context, movieID string) error
	ListMyRatings(ctx context.Context) ([]Rating, error)
	ListMovieRatings(ctx context.Context, movieID string, page, pageSize int) (*PaginatedResult[MovieReview], error)
}
