package postgres

import (
	"context"
	"errors"
	"time"

	"go-movie-community-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

// GetStats fetches dashboard statistics
func (r *adminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{}

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_disabled),
		       COUNT(*) FILTER (WHERE role = 'admin')
		FROM users`).Scan(&stats.TotalUsers, &stats.DisabledUsers, &stats.Admins)
	if err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&stats.TotalMovies); err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `SELECT COUNT(*), COALESCE(AVG(score), 0)::float8 FROM ratings`).
		Scan(&stats.TotalRatings, &stats.AverageScore)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

const adminUserQuery = `
	SELECT u.id, u.email, u.name, u.role, u.is_disabled,
	       (SELECT COUNT(*) FROM ratings r WHERE r.user_id = u.id)::int,
	       u.created_at, u.updated_at
	FROM users u`

// ListUsers fetches paginated users with optional role filter
func (r *adminRepo) ListUsers(ctx context.Context, role string, page, pageSize int) ([]domain.AdminUser, int64, error) {
	var total int64
	offset := (page - 1) * pageSize

	var rows pgx.Rows
	var err error
	if role != "" {
		if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.db.Query(ctx, adminUserQuery+` WHERE u.role = $1 ORDER BY u.created_at DESC LIMIT $2 OFFSET $3`,
			role, pageSize, offset)
	} else {
		if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.db.Query(ctx, adminUserQuery+` ORDER BY u.created_at DESC LIMIT $1 OFFSET $2`,
			pageSize, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []domain.AdminUser{}
	for rows.Next() {
		u, err := scanAdminUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *adminRepo) GetUser(ctx context.Context, userID string) (*domain.AdminUser, error) {
	u, err := scanAdminUser(r.db.QueryRow(ctx, adminUserQuery+` WHERE u.id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// SetDisabled enables or disables a user
func (r *adminRepo) SetDisabled(ctx context.Context, userID string, disable bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET is_disabled = $2, updated_at = $3 WHERE id = $1`,
		userID, disable, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *adminRepo) SetRole(ctx context.Context, userID string, role string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET role = $2, updated_at = $3 WHERE id = $1`,
		userID, role, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteUser removes a user and, through the cascade, their ratings. Movie
// aggregates are recomputed for every movie they had rated.
func (r *adminRepo) DeleteUser(ctx context.Context, userID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT movie_id::text FROM ratings WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	var movieIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		movieIDs = append(movieIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	for _, movieID := range movieIDs {
		if _, err := tx.Exec(ctx, refreshMovieAggregateSQL, movieID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ExportRatings returns every rating with its author and movie, oldest first.
func (r *adminRepo) ExportRatings(ctx context.Context) ([]domain.RatingExportRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email, u.name, m.id::text, m.title, r.score, r.comment, r.updated_at
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		JOIN movies m ON m.id = r.movie_id
		ORDER BY r.updated_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.RatingExportRow{}
	for rows.Next() {
		var row domain.RatingExportRow
		if err := rows.Scan(&row.UserID, &row.UserEmail, &row.UserName, &row.MovieID, &row.MovieTitle,
			&row.Score, &row.Comment, &row.RatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func scanAdminUser(row pgx.Row) (*domain.AdminUser, error) {
	var u domain.AdminUser
	var createdAt, updatedAt time.Time
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.IsDisabled, &u.RateCount, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt = createdAt.Format(time.RFC3339)
	u.UpdatedAt = updatedAt.Format(time.RFC3339)
	return &u, nil
}
