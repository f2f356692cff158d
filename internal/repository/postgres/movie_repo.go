package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-movie-community-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const movieColumns = `id::text, title, synopsis, poster_url, release_date, genres, average_rating::float8, rating_count, created_at, updated_at`

const bumpRatersVersionSQL = `
	UPDATE users SET ratings_version = ratings_version + 1
	WHERE id IN (SELECT user_id FROM ratings WHERE movie_id = $1)`

type movieRepo struct {
	db *pgxpool.Pool
}

func NewMovieRepository(db *pgxpool.Pool) domain.MovieRepository {
	return &movieRepo{db: db}
}

func (r *movieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (id, title, synopsis, poster_url, release_date, genres, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		movie.ID, movie.Title, movie.Synopsis, movie.PosterURL, movie.ReleaseDate,
		pq.Array(movie.Genres), movie.CreatedAt, movie.UpdatedAt,
	)
	return err
}

func (r *movieRepo) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`
	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return movie, nil
}

// List filters by a case-insensitive title search and an exact genre.
func (r *movieRepo) List(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, int64, error) {
	var (
		where []string
		args  []interface{}
	)
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if g := strings.TrimSpace(filter.Genre); g != "" {
		args = append(args, g)
		where = append(where, fmt.Sprintf("$%d = ANY(genres)", len(args)))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM movies`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	args = append(args, filter.PageSize, offset)
	query := fmt.Sprintf(`SELECT %s FROM movies%s ORDER BY release_date DESC NULLS LAST, title ASC LIMIT $%d OFFSET $%d`,
		movieColumns, clause, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	movies := []domain.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, err
		}
		movies = append(movies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

// Update rewrites the movie. Genre changes alter the raters' genre counts, so
// their ratings version is bumped in the same transaction.
func (r *movieRepo) Update(ctx context.Context, movie *domain.Movie) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE movies SET title = $2, synopsis = $3, release_date = $4, genres = $5, updated_at = $6 WHERE id = $1`
	tag, err := tx.Exec(ctx, query,
		movie.ID, movie.Title, movie.Synopsis, movie.ReleaseDate, pq.Array(movie.Genres), movie.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, bumpRatersVersionSQL, movie.ID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *movieRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Raters' data changes, so their cached compatibility scores must expire.
	if _, err := tx.Exec(ctx, bumpRatersVersionSQL, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *movieRepo) SetPosterURL(ctx context.Context, id, url string) error {
	tag, err := r.db.Exec(ctx, `UPDATE movies SET poster_url = $2, updated_at = NOW() WHERE id = $1`, id, url)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var m domain.Movie
	var genres []string
	err := row.Scan(
		&m.ID, &m.Title, &m.Synopsis, &m.PosterURL, &m.ReleaseDate, pq.Array(&genres),
		&m.AverageRating, &m.RatingCount, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if genres == nil {
		genres = []string{}
	}
	m.Genres = genres
	return &m, nil
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
