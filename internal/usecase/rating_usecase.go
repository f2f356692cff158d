package usecase

import (
	"context"
	"strings"

	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultReviewPageSize = 10
	maxReviewPageSize     = 50
)

type ratingUsecase struct {
	ratingRepo domain.RatingRepository
	movieRepo  domain.MovieRepository
	validate   *validator.Validate
}

func NewRatingUsecase(ratingRepo domain.RatingRepository, movieRepo domain.MovieRepository, validate *validator.Validate) domain.RatingUsecase {
	return &ratingUsecase{ratingRepo: ratingRepo, movieRepo: movieRepo, validate: validate}
}

// RateMovie creates or overwrites the caller's rating of a movie.
func (u *ratingUsecase) RateMovie(ctx context.Context, movieID string, req domain.RateMovieRequest) (*domain.Rating, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(movieID); err != nil {
		return nil, apperror.NotFound("Movie not found")
	}

	req.Comment = strings.TrimSpace(req.Comment)
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	rating, err := u.ratingRepo.Upsert(ctx, userID, movieID, req.Score, req.Comment)
	if err != nil {
		return nil, repoError(err, "Movie not found")
	}
	return rating, nil
}

func (u *ratingUsecase) DeleteRating(ctx context.Context, movieID string) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	if _, err := uuid.Parse(movieID); err != nil {
		return apperror.NotFound("Rating not found")
	}
	if err := u.ratingRepo.Delete(ctx, userID, movieID); err != nil {
		return repoError(err, "Rating not found")
	}
	return nil
}

func (u *ratingUsecase) ListMyRatings(ctx context.Context) ([]domain.Rating, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := u.ratingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if ratings == nil {
		ratings = []domain.Rating{}
	}
	return ratings, nil
}

func (u *ratingUsecase) ListMovieRatings(ctx context.Context, movieID string, page, pageSize int) (*domain.PaginatedResult[domain.MovieReview], error) {
	if _, err := uuid.Parse(movieID); err != nil {
		return nil, apperror.NotFound("Movie not found")
	}
	if _, err := u.movieRepo.GetByID(ctx, movieID); err != nil {
		return nil, repoError(err, "Movie not found")
	}

	page, pageSize = clampPage(page, pageSize, defaultReviewPageSize, maxReviewPageSize)
	reviews, total, err := u.ratingRepo.ListByMovie(ctx, movieID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.PaginatedResult[domain.MovieReview]{
		Data:       reviews,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}
