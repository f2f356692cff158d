package postgres

import (
	"context"
	"errors"

	"go-movie-community-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type communityRepo struct {
	db *pgxpool.Pool
}

// NewCommunityRepository reads the snapshots the discovery engine works on.
func NewCommunityRepository(db *pgxpool.Pool) domain.CommunityRepository {
	return &communityRepo{db: db}
}

func (r *communityRepo) GetViewer(ctx context.Context, userID string) (*domain.Viewer, error) {
	var v domain.Viewer
	err := r.db.QueryRow(ctx, `SELECT id, favorite_genre, ratings_version FROM users WHERE id = $1`, userID).
		Scan(&v.ID, &v.FavoriteGenre, &v.DataVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	ratings, err := r.ratingsByUsers(ctx, []string{userID})
	if err != nil {
		return nil, err
	}
	counts, err := r.genreCountsByUsers(ctx, []string{userID})
	if err != nil {
		return nil, err
	}

	v.Ratings = ratings[userID]
	if v.Ratings == nil {
		v.Ratings = []domain.Rating{}
	}
	v.GenreCounts = counts[userID]
	return &v, nil
}

// ListMembers loads every active user except excludeUserID, oldest account
// first, with their rated lists and genre counts.
func (r *communityRepo) ListMembers(ctx context.Context, excludeUserID string) ([]domain.CommunityMember, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, photo_url, favorite_genre, ratings_version, created_at
		FROM users
		WHERE is_disabled = false AND id <> $1
		ORDER BY created_at ASC, id ASC`, excludeUserID)
	if err != nil {
		return nil, err
	}
	members, err := collectMembers(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachRatings(ctx, members); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *communityRepo) GetMember(ctx context.Context, userID string) (*domain.CommunityMember, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, photo_url, favorite_genre, ratings_version, created_at
		FROM users
		WHERE is_disabled = false AND id = $1`, userID)
	if err != nil {
		return nil, err
	}
	members, err := collectMembers(rows)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, domain.ErrNotFound
	}
	if err := r.attachRatings(ctx, members); err != nil {
		return nil, err
	}
	return &members[0], nil
}

func collectMembers(rows pgx.Rows) ([]domain.CommunityMember, error) {
	defer rows.Close()

	members := []domain.CommunityMember{}
	for rows.Next() {
		var m domain.CommunityMember
		if err := rows.Scan(&m.ID, &m.Name, &m.PhotoURL, &m.FavoriteGenre, &m.DataVersion, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *communityRepo) attachRatings(ctx context.Context, members []domain.CommunityMember) error {
	if len(members) == 0 {
		return nil
	}
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	ratings, err := r.ratingsByUsers(ctx, ids)
	if err != nil {
		return err
	}
	counts, err := r.genreCountsByUsers(ctx, ids)
	if err != nil {
		return err
	}

	for i := range members {
		members[i].RatedList = ratings[members[i].ID]
		if members[i].RatedList == nil {
			members[i].RatedList = []domain.Rating{}
		}
		members[i].RateCount = len(members[i].RatedList)
		members[i].GenreCounts = counts[members[i].ID]
		members[i].TopGenres = []string{}
	}
	return nil
}

func (r *communityRepo) ratingsByUsers(ctx context.Context, userIDs []string) (map[string][]domain.Rating, error) {
	rows, err := r.db.Query(ctx, ratedListQuery+`
		WHERE r.user_id = ANY($1)
		ORDER BY r.user_id, r.updated_at DESC`, pq.Array(userIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.Rating, len(userIDs))
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out[rt.UserID] = append(out[rt.UserID], *rt)
	}
	return out, rows.Err()
}

func (r *communityRepo) genreCountsByUsers(ctx context.Context, userIDs []string) (map[string][]domain.GenreCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.user_id, g.genre, COUNT(*) AS n
		FROM ratings r
		JOIN movies m ON m.id = r.movie_id
		CROSS JOIN LATERAL unnest(m.genres) AS g(genre)
		WHERE r.user_id = ANY($1)
		GROUP BY r.user_id, g.genre
		ORDER BY r.user_id, n DESC, g.genre ASC`, pq.Array(userIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.GenreCount, len(userIDs))
	for rows.Next() {
		var userID string
		var gc domain.GenreCount
		if err := rows.Scan(&userID, &gc.Genre, &gc.Count); err != nil {
			return nil, err
		}
		out[userID] = append(out[userID], gc)
	}
	return out, rows.Err()
}
