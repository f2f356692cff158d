package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportRows() []domain.RatingExportRow {
	return []domain.RatingExportRow{
		{
			UserID: "u1", UserEmail: "ana@example.com", UserName: "Ana",
			MovieID: movieID, MovieTitle: "Alien, the 8th passenger",
			Score: 9, Comment: "scary", RatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestAdminPrivilege(t *testing.T) {
	uc := usecase.NewAdminUsecase(new(MockAdminRepo))

	t.Run("Should fail if role is not admin", func(t *testing.T) {
		_, err := uc.GetStats(userCtx("u1"))
		assertAppError(t, err, http.StatusForbidden)
	})

	t.Run("Should fail safe if role is nil", func(t *testing.T) {
		_, err := uc.GetStats(context.Background())
		assertAppError(t, err, http.StatusForbidden)
	})

	t.Run("Should not let admins disable themselves", func(t *testing.T) {
		_, err := uc.DisableUser(adminCtx("root"), "root", true)
		assertAppError(t, err, http.StatusBadRequest)
	})
}

func TestDisableUser(t *testing.T) {
	repo := new(MockAdminRepo)
	uc := usecase.NewAdminUsecase(repo)
	ctx := adminCtx("root")

	repo.On("SetDisabled", ctx, "u1", true).Return(nil)
	repo.On("GetUser", ctx, "u1").Return(&domain.AdminUser{ID: "u1", IsDisabled: true}, nil)

	user, err := uc.DisableUser(ctx, "u1", true)
	require.NoError(t, err)
	assert.True(t, user.IsDisabled)
	repo.AssertExpectations(t)
}

func TestUpdateUserRole(t *testing.T) {
	t.Run("Should reject unknown roles", func(t *testing.T) {
		uc := usecase.NewAdminUsecase(new(MockAdminRepo))
		_, err := uc.UpdateUserRole(adminCtx("root"), "u1", "superuser")
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Should map missing users to not found", func(t *testing.T) {
		repo := new(MockAdminRepo)
		uc := usecase.NewAdminUsecase(repo)
		ctx := adminCtx("root")

		repo.On("SetRole", ctx, "ghost", domain.RoleAdmin).Return(domain.ErrNotFound)

		_, err := uc.UpdateUserRole(ctx, "ghost", domain.RoleAdmin)
		assertAppError(t, err, http.StatusNotFound)
	})
}

func TestListUsers_Paging(t *testing.T) {
	repo := new(MockAdminRepo)
	uc := usecase.NewAdminUsecase(repo)
	ctx := adminCtx("root")

	repo.On("ListUsers", ctx, "", 1, 10).Return([]domain.AdminUser{}, int64(25), nil)

	res, err := uc.ListUsers(ctx, "", -1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalPages)
}

func TestExportRatings(t *testing.T) {
	t.Run("Should render csv", func(t *testing.T) {
		repo := new(MockAdminRepo)
		uc := usecase.NewAdminUsecase(repo)
		ctx := adminCtx("root")
		repo.On("ExportRatings", ctx).Return(exportRows(), nil)

		data, filename, err := uc.ExportRatings(ctx, "CSV")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(filename, ".csv"))

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "USER ID,EMAIL,NAME,MOVIE ID,MOVIE,RATING,COMMENT,RATED AT", lines[0])
		assert.Contains(t, lines[1], `"Alien, the 8th passenger",9,scary,2024-05-01T12:00:00Z`)
	})

	t.Run("Should render xlsx by default", func(t *testing.T) {
		repo := new(MockAdminRepo)
		uc := usecase.NewAdminUsecase(repo)
		ctx := adminCtx("root")
		repo.On("ExportRatings", ctx).Return(exportRows(), nil)

		data, filename, err := uc.ExportRatings(ctx, "")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(filename, ".xlsx"))

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		header, err := f.GetCellValue("Ratings", "A1")
		require.NoError(t, err)
		assert.Equal(t, "USER ID", header)

		title, err := f.GetCellValue("Ratings", "E2")
		require.NoError(t, err)
		assert.Equal(t, "Alien, the 8th passenger", title)
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		uc := usecase.NewAdminUsecase(new(MockAdminRepo))
		_, _, err := uc.ExportRatings(adminCtx("root"), "pdf")
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Should wrap repository failures", func(t *testing.T) {
		repo := new(MockAdminRepo)
		uc := usecase.NewAdminUsecase(repo)
		ctx := adminCtx("root")
		repo.On("ExportRatings", ctx).Return([]domain.RatingExportRow{}, errors.New("timeout"))

		_, _, err := uc.ExportRatings(ctx, "csv")
		assertAppError(t, err, http.StatusInternalServerError)
	})
}
