package usecase

import (
	"context"
	"strings"
	"time"

	"go-movie-community-backend/internal/discovery"
	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	userRepo   domain.UserRepository
	ratingRepo domain.RatingRepository
	validate   *validator.Validate
}

func NewProfileUsecase(userRepo domain.UserRepository, ratingRepo domain.RatingRepository, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{userRepo: userRepo, ratingRepo: ratingRepo, validate: validate}
}

func (u *profileUsecase) GetMyProfile(ctx context.Context) (*domain.UserProfile, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User not found")
	}
	return u.buildProfile(ctx, user)
}

func (u *profileUsecase) UpdateMyProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.User, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.PhotoURL = strings.TrimSpace(req.PhotoURL)
	req.FavoriteGenre = strings.TrimSpace(req.FavoriteGenre)
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User not found")
	}

	user.Name = req.Name
	user.PhotoURL = req.PhotoURL
	user.FavoriteGenre = req.FavoriteGenre
	user.UpdatedAt = time.Now()

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, repoError(err, "User not found")
	}
	return user, nil
}

// GetPublicProfile shows another user's ratings. Disabled accounts are hidden.
func (u *profileUsecase) GetPublicProfile(ctx context.Context, userID string) (*domain.PublicProfile, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User not found")
	}
	if user.IsDisabled {
		return nil, apperror.NotFound("User not found")
	}

	profile, err := u.buildProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	return &domain.PublicProfile{
		ID:        profile.ID,
		Name:      profile.Name,
		PhotoURL:  profile.PhotoURL,
		TopGenres: profile.TopGenres,
		RateCount: profile.RateCount,
		RatedList: profile.RatedList,
		CreatedAt: profile.CreatedAt,
	}, nil
}

func (u *profileUsecase) buildProfile(ctx context.Context, user *domain.User) (*domain.UserProfile, error) {
	ratings, err := u.ratingRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	counts, err := u.ratingRepo.GenreCounts(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if ratings == nil {
		ratings = []domain.Rating{}
	}
	if counts == nil {
		counts = []domain.GenreCount{}
	}

	return &domain.UserProfile{
		User:        *user,
		RatedList:   ratings,
		GenreCounts: counts,
		TopGenres:   discovery.TopGenres(counts, user.FavoriteGenre),
		RateCount:   len(ratings),
	}, nil
}
