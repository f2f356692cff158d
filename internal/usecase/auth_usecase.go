package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// EnsureUserExists creates the local record for a token subject on first
// sign-in and keeps the email in sync afterwards. The role is never taken
// from the token: new users are plain users until an admin promotes them.
func (u *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		return apperror.BadRequest("User ID is required")
	}

	existing, err := u.userRepo.GetByID(ctx, user.ID)
	if err == nil {
		if user.Email != "" && existing.Email != user.Email {
			existing.Email = user.Email
			existing.UpdatedAt = time.Now()
			if err := u.userRepo.Update(ctx, existing); err != nil {
				return repoError(err, "User not found")
			}
		}
		*user = *existing
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}

	if user.Name == "" {
		user.Name = nameFromEmail(user.Email)
	}
	user.Role = domain.RoleUser
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	if err := u.userRepo.Create(ctx, user); err != nil {
		return repoError(err, "User not found")
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "User not found")
	}
	return user, nil
}

func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "Movie fan"
	}
	return local
}
