package usecase

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"

	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"
	"go-movie-community-backend/pkg/validation"
)

func currentUserID(ctx context.Context) (string, error) {
	id, ok := domain.UserIDFromContext(ctx)
	if !ok {
		return "", apperror.Unauthorized("User not authenticated")
	}
	return id, nil
}

func requireAdmin(ctx context.Context) error {
	if domain.RoleFromContext(ctx) != domain.RoleAdmin {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}

// repoError maps repository errors onto API errors.
func repoError(err error, notFound string) error {
	var appErr *apperror.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, domain.ErrConflict):
		return apperror.Conflict(err.Error())
	default:
		return apperror.Internal(err)
	}
}

func validationError(err error) error {
	return apperror.New(http.StatusBadRequest, strings.Join(validation.FormatValidationErrors(err), "; "), err)
}

func totalPages(total int64, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

func clampPage(page, pageSize, defaultSize, maxSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}
