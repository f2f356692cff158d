package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"
	"go-movie-community-backend/pkg/logger"
	"go-movie-community-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultMoviePageSize = 12
	maxMoviePageSize     = 60
)

// PosterOptions controls how uploaded posters are re-encoded.
type PosterOptions struct {
	MaxDimension int
	JPEGQuality  int
}

type movieUsecase struct {
	repo     domain.MovieRepository
	posters  domain.PosterStorage
	validate *validator.Validate
	opts     PosterOptions
}

// NewMovieUsecase wires the catalogue. posters may be nil when no bucket is
// configured; uploads are then rejected.
func NewMovieUsecase(repo domain.MovieRepository, posters domain.PosterStorage, validate *validator.Validate, opts PosterOptions) domain.MovieUsecase {
	return &movieUsecase{repo: repo, posters: posters, validate: validate, opts: opts}
}

func (u *movieUsecase) ListMovies(ctx context.Context, filter domain.MovieFilter) (*domain.PaginatedResult[domain.Movie], error) {
	filter.Page, filter.PageSize = clampPage(filter.Page, filter.PageSize, defaultMoviePageSize, maxMoviePageSize)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Genre = strings.TrimSpace(filter.Genre)

	movies, total, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to list movies: %w", err))
	}

	return &domain.PaginatedResult[domain.Movie]{
		Data:       movies,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages(total, filter.PageSize),
	}, nil
}

func (u *movieUsecase) GetMovie(ctx context.Context, id string) (*domain.Movie, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NotFound("Movie not found")
	}
	movie, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Movie not found")
	}
	return movie, nil
}

func (u *movieUsecase) CreateMovie(ctx context.Context, req domain.MovieRequest) (*domain.Movie, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	movie := &domain.Movie{ID: uuid.NewString()}
	if err := u.apply(movie, req); err != nil {
		return nil, err
	}
	movie.CreatedAt = time.Now()
	movie.UpdatedAt = movie.CreatedAt

	if err := u.repo.Create(ctx, movie); err != nil {
		return nil, repoError(err, "Movie not found")
	}

	logger.Log.Info("movie created", "movie_id", movie.ID, "title", movie.Title)
	return movie, nil
}

func (u *movieUsecase) UpdateMovie(ctx context.Context, id string, req domain.MovieRequest) (*domain.Movie, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	movie, err := u.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.apply(movie, req); err != nil {
		return nil, err
	}
	movie.UpdatedAt = time.Now()

	if err := u.repo.Update(ctx, movie); err != nil {
		return nil, repoError(err, "Movie not found")
	}
	return movie, nil
}

func (u *movieUsecase) DeleteMovie(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NotFound("Movie not found")
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return repoError(err, "Movie not found")
	}

	logger.Log.Info("movie deleted", "movie_id", id)
	return nil
}

// UploadPoster compresses the image to a JPEG and stores it under a fresh key
// so CDN caches never serve a stale poster.
func (u *movieUsecase) UploadPoster(ctx context.Context, id string, data []byte) (*domain.Movie, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if u.posters == nil {
		return nil, apperror.ServiceUnavailable("Poster storage is not configured")
	}

	movie, err := u.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	compressed, err := storage.CompressImage(data, u.opts.MaxDimension, u.opts.JPEGQuality)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "Poster must be a JPEG or PNG image", err)
	}

	key := fmt.Sprintf("posters/%s/%s.jpg", movie.ID, uuid.NewString())
	url, err := u.posters.Upload(ctx, key, compressed, "image/jpeg")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := u.repo.SetPosterURL(ctx, movie.ID, url); err != nil {
		return nil, repoError(err, "Movie not found")
	}

	logger.Log.Info("poster uploaded", "movie_id", movie.ID, "bytes_in", len(data), "bytes_out", len(compressed))
	movie.PosterURL = url
	return movie, nil
}

func (u *movieUsecase) apply(movie *domain.Movie, req domain.MovieRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Synopsis = strings.TrimSpace(req.Synopsis)
	req.ReleaseDate = strings.TrimSpace(req.ReleaseDate)
	req.Genres = normalizeGenres(req.Genres)
	if err := u.validate.Struct(req); err != nil {
		return validationError(err)
	}

	var released *time.Time
	if req.ReleaseDate != "" {
		t, err := time.Parse("2006-01-02", req.ReleaseDate)
		if err != nil {
			return apperror.BadRequest("Release date: expected format YYYY-MM-DD")
		}
		released = &t
	}

	movie.Title = req.Title
	movie.Synopsis = req.Synopsis
	movie.ReleaseDate = released
	movie.Genres = req.Genres
	return nil
}

// normalizeGenres trims labels and drops blanks and exact duplicates, keeping
// the first occurrence. Case is preserved.
func normalizeGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	seen := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}
