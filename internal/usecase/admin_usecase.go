package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"
	"go-movie-community-backend/pkg/logger"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"USER ID", "EMAIL", "NAME", "MOVIE ID", "MOVIE", "RATING", "COMMENT", "RATED AT"}

type adminUsecase struct {
	adminRepo domain.AdminRepository
}

func NewAdminUsecase(adminRepo domain.AdminRepository) domain.AdminUsecase {
	return &adminUsecase{adminRepo: adminRepo}
}

// GetStats returns dashboard statistics
func (u *adminUsecase) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	stats, err := u.adminRepo.GetStats(ctx)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to fetch statistics: %w", err))
	}
	return stats, nil
}

// ListUsers returns paginated users
func (u *adminUsecase) ListUsers(ctx context.Context, role string, page, pageSize int) (*domain.PaginatedResult[domain.AdminUser], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if role != "" && role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, apperror.BadRequest("role must be one of: user, admin")
	}

	page, pageSize = clampPage(page, pageSize, 10, 100)

	users, total, err := u.adminRepo.ListUsers(ctx, role, page, pageSize)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to fetch users: %w", err))
	}

	return &domain.PaginatedResult[domain.AdminUser]{
		Data:       users,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// DisableUser enables or disables a user
func (u *adminUsecase) DisableUser(ctx context.Context, userID string, disable bool) (*domain.AdminUser, error) {
	if err := u.requireOtherUser(ctx, userID); err != nil {
		return nil, err
	}

	if err := u.adminRepo.SetDisabled(ctx, userID, disable); err != nil {
		return nil, repoError(err, "User not found")
	}

	logger.Log.Info("user disabled state changed", "target_user", userID, "disabled", disable)
	return u.getUser(ctx, userID)
}

func (u *adminUsecase) UpdateUserRole(ctx context.Context, userID string, role string) (*domain.AdminUser, error) {
	if err := u.requireOtherUser(ctx, userID); err != nil {
		return nil, err
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, apperror.BadRequest("role must be one of: user, admin")
	}

	if err := u.adminRepo.SetRole(ctx, userID, role); err != nil {
		return nil, repoError(err, "User not found")
	}

	logger.Log.Info("user role changed", "target_user", userID, "role", role)
	return u.getUser(ctx, userID)
}

func (u *adminUsecase) DeleteUser(ctx context.Context, userID string) error {
	if err := u.requireOtherUser(ctx, userID); err != nil {
		return err
	}

	if err := u.adminRepo.DeleteUser(ctx, userID); err != nil {
		return repoError(err, "User not found")
	}

	logger.Log.Info("user deleted", "target_user", userID)
	return nil
}

// ExportRatings renders every rating and returns the file with its name.
func (u *adminUsecase) ExportRatings(ctx context.Context, format string) ([]byte, string, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, "", err
	}

	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		return nil, "", apperror.BadRequest("format must be one of: xlsx, csv")
	}

	rows, err := u.adminRepo.ExportRatings(ctx)
	if err != nil {
		return nil, "", apperror.Internal(fmt.Errorf("failed to load ratings: %w", err))
	}

	var data []byte
	if format == "csv" {
		data, err = exportRatingsCSV(rows)
	} else {
		data, err = exportRatingsExcel(rows)
	}
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	filename := fmt.Sprintf("ratings_%s.%s", time.Now().Format("20060102_150405"), format)
	return data, filename, nil
}

func (u *adminUsecase) requireOtherUser(ctx context.Context, userID string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if userID == "" {
		return apperror.BadRequest("User ID is required")
	}
	if self, _ := domain.UserIDFromContext(ctx); self == userID {
		return apperror.BadRequest("Admins cannot change their own account")
	}
	return nil
}

func (u *adminUsecase) getUser(ctx context.Context, userID string) (*domain.AdminUser, error) {
	user, err := u.adminRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User not found")
	}
	return user, nil
}

func exportRecord(r domain.RatingExportRow) []string {
	return []string{
		r.UserID, r.UserEmail, r.UserName, r.MovieID, r.MovieTitle,
		strconv.Itoa(r.Score), r.Comment, r.RatedAt.UTC().Format(time.RFC3339),
	}
}

func exportRatingsCSV(rows []domain.RatingExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write(exportRecord(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRatingsExcel(rows []domain.RatingExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Ratings"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#7A1E1E"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, r := range rows {
		values := []interface{}{
			r.UserID, r.UserEmail, r.UserName, r.MovieID, r.MovieTitle,
			r.Score, r.Comment, r.RatedAt.UTC().Format(time.RFC3339),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	for i := range exportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
