package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Synopsis      string     `json:"synopsis"`
	PosterURL     string     `json:"posterUrl"`
	ReleaseDate   *time.Time `json:"releaseDate,omitempty"`
	Genres        []string   `json:"genres"`
	AverageRating float64    `json:"averageRating"`
	RatingCount   int        `json:"ratingCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// MovieFilter drives the public catalogue listing.
type MovieFilter struct {
	Search   string
	Genre    string
	Page     int
	PageSize int
}

type MovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Synopsis    string   `json:"synopsis" validate:"max=4000"`
	ReleaseDate string   `json:"releaseDate" validate:"omitempty,datetime=2006-01-02"`
	Genres      []string `json:"genres" validate:"max=10,dive,genre_label"`
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, id string) (*Movie, error)
	List(ctx context.Context, filter MovieFilter) ([]Movie, int64, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id string) error
	SetPosterURL(ctx context.Context, id, url string) error
}

// PosterStorage stores poster images and returns their public URL.
type PosterStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type MovieUsecase interface {
	ListMovies(ctx context.Context, filter MovieFilter) (*PaginatedResult[Movie], error)
	GetMovie(ctx context.Context, id string) (*Movie, error)
	CreateMovie(ctx context.Context, req MovieRequest) (*Movie, error)
	UpdateMovie(ctx context.Context, id string, req MovieRequest) (*Movie, error)
	DeleteMovie(ctx context.Context, id string) error
	UploadPoster(ctx context.Context, id string, data []byte) (*Movie, error)
}
