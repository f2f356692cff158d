package postgres

import (
	"context"
	"errors"

	"go-movie-community-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ratingRepo struct {
	db *pgxpool.Pool
}

func NewRatingRepository(db *pgxpool.Pool) domain.RatingRepository {
	return &ratingRepo{db: db}
}

const ratedListQuery = `
	SELECT r.user_id, m.id::text, m.title, m.poster_url, m.release_date, m.average_rating::float8,
	       r.score, r.comment, r.created_at, r.updated_at
	FROM ratings r
	JOIN movies m ON m.id = r.movie_id`

func (r *ratingRepo) Upsert(ctx context.Context, userID, movieID string, score int, comment string) (*domain.Rating, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO ratings (user_id, movie_id, score, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id, movie_id)
		DO UPDATE SET score = EXCLUDED.score, comment = EXCLUDED.comment, updated_at = NOW()`,
		userID, movieID, score, comment)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := refreshAggregates(ctx, tx, userID, movieID); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, ratedListQuery+` WHERE r.user_id = $1 AND r.movie_id = $2`, userID, movieID)
	rating, err := scanRating(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return rating, nil
}

func (r *ratingRepo) Delete(ctx context.Context, userID, movieID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM ratings WHERE user_id = $1 AND movie_id = $2`, userID, movieID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := refreshAggregates(ctx, tx, userID, movieID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const refreshMovieAggregateSQL = `
	UPDATE movies m
	SET average_rating = COALESCE(s.avg, 0), rating_count = s.cnt, updated_at = NOW()
	FROM (SELECT AVG(score)::numeric(4,2) AS avg, COUNT(*) AS cnt FROM ratings WHERE movie_id = $1) s
	WHERE m.id = $1`

// refreshAggregates recomputes the movie average and bumps the rater's
// ratings version.
func refreshAggregates(ctx context.Context, tx pgx.Tx, userID, movieID string) error {
	if _, err := tx.Exec(ctx, refreshMovieAggregateSQL, movieID); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `UPDATE users SET ratings_version = ratings_version + 1 WHERE id = $1`, userID)
	return err
}

func (r *ratingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Rating, error) {
	rows, err := r.db.Query(ctx, ratedListQuery+` WHERE r.user_id = $1 ORDER BY r.updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []domain.Rating{}
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, *rating)
	}
	return ratings, rows.Err()
}

func (r *ratingRepo) ListByMovie(ctx context.Context, movieID string, limit, offset int) ([]domain.MovieReview, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ratings WHERE movie_id = $1`, movieID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT r.user_id, u.name, u.photo_url, r.score, r.comment, r.updated_at
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.movie_id = $1
		ORDER BY r.updated_at DESC
		LIMIT $2 OFFSET $3`, movieID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reviews := []domain.MovieReview{}
	for rows.Next() {
		var rv domain.MovieReview
		if err := rows.Scan(&rv.UserID, &rv.UserName, &rv.UserPhoto, &rv.Score, &rv.Comment, &rv.UpdatedAt); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, total, rows.Err()
}

// GenreCounts counts the genres of the movies a user rated, most watched first.
func (r *ratingRepo) GenreCounts(ctx context.Context, userID string) ([]domain.GenreCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT g.genre, COUNT(*) AS n
		FROM ratings r
		JOIN movies m ON m.id = r.movie_id
		CROSS JOIN LATERAL unnest(m.genres) AS g(genre)
		WHERE r.user_id = $1
		GROUP BY g.genre
		ORDER BY n DESC, g.genre ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.GenreCount{}
	for rows.Next() {
		var gc domain.GenreCount
		if err := rows.Scan(&gc.Genre, &gc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, gc)
	}
	return counts, rows.Err()
}

func scanRating(row pgx.Row) (*domain.Rating, error) {
	var rt domain.Rating
	err := row.Scan(
		&rt.UserID, &rt.Movie.ID, &rt.Movie.Title, &rt.Movie.PosterURL, &rt.Movie.ReleaseDate,
		&rt.Movie.AverageRating, &rt.Score, &rt.Comment, &rt.CreatedAt, &rt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}
