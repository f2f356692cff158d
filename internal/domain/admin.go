package domain

import (
	"context"
	"time"
)

// AdminStats contains dashboard statistics
type AdminStats struct {
	TotalUsers    int64   `json:"totalUsers"`
	DisabledUsers int64   `json:"disabledUsers"`
	Admins        int64   `json:"admins"`
	TotalMovies   int64   `json:"totalMovies"`
	TotalRatings  int64   `json:"totalRatings"`
	AverageScore  float64 `json:"averageScore"`
}

// AdminUser represents a user for admin management
type AdminUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsDisabled bool   `json:"isDisabled"`
	RateCount  int    `json:"rateCount"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// RatingExportRow is one line of the ratings report.
type RatingExportRow struct {
	UserID     string
	UserEmail  string
	UserName   string
	MovieID    string
	MovieTitle string
	Score      int
	Comment    string
	RatedAt    time.Time
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// PaginatedResult for list responses
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// AdminRepository defines admin-specific data access
type AdminRepository interface {
	GetStats(ctx context.Context) (*AdminStats, error)

	ListUsers(ctx context.Context, role string, page, pageSize int) ([]AdminUser, int64, error)
	GetUser(ctx context.Context, userID string) (*AdminUser, error)
	SetDisabled(ctx context.Context, userID string, disable bool) error
	SetRole(ctx context.Context, userID string, role string) error
	DeleteUser(ctx context.Context, userID string) error

	ExportRatings(ctx context.Context) ([]RatingExportRow, error)
}

// AdminUsecase defines admin business logic
type AdminUsecase interface {
	GetStats(ctx context.Context) (*AdminStats, error)

	ListUsers(ctx context.Context, role string, page, pageSize int) (*PaginatedResult[AdminUser], error)
	DisableUser(ctx context.Context, userID string, disable bool) (*AdminUser, error)
	UpdateUserRole(ctx context.Context, userID string, role string) (*AdminUser, error)
	DeleteUser(ctx context.Context, userID string) error

	// ExportRatings renders every rating as xlsx (default) or csv.
	ExportRatings(ctx context.Context, format string) ([]byte, string, error)
}
