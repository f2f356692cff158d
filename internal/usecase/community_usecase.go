package usecase

import (
	"context"
	"strings"

	"go-movie-community-backend/internal/discovery"
	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"
	"go-movie-community-backend/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const defaultMaxCommunityPageSize = 50

type communityUsecase struct {
	repo        domain.CommunityRepository
	cache       domain.ScoreCache
	maxPageSize int
}

// NewCommunityUsecase builds the community page. cache may be nil.
func NewCommunityUsecase(repo domain.CommunityRepository, cache domain.ScoreCache, maxPageSize int) domain.CommunityUsecase {
	if maxPageSize < 1 {
		maxPageSize = defaultMaxCommunityPageSize
	}
	return &communityUsecase{repo: repo, cache: cache, maxPageSize: maxPageSize}
}

// Discover lists the other members for the caller, filtered, sorted and
// paginated by q.
func (u *communityUsecase) Discover(ctx context.Context, q domain.DiscoveryQuery) (*domain.DiscoveryPage, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	q, err = u.normalizeQuery(q)
	if err != nil {
		return nil, err
	}

	var (
		viewer  *domain.Viewer
		members []domain.CommunityMember
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		viewer, err = u.repo.GetViewer(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = u.repo.ListMembers(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, repoError(err, "User not found")
	}

	withTopGenres(members)

	// A viewer without ratings scores everyone at the default; nothing to cache.
	if u.cache == nil || len(viewer.Ratings) == 0 {
		page := discovery.Run(*viewer, members, q)
		return &page, nil
	}

	memo := discovery.NewMemo(u.loadScores(ctx, viewer, members))
	page := discovery.NewEngine(*viewer, discovery.WithMemo(memo)).Run(members, q)
	u.storeScores(ctx, memo.Fresh())

	return &page, nil
}

// Compatibility explains the score between the caller and one member.
func (u *communityUsecase) Compatibility(ctx context.Context, memberID string) (*domain.CandidateScore, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if memberID == userID {
		return nil, apperror.BadRequest("Cannot compare a user with themselves")
	}

	var (
		viewer *domain.Viewer
		member *domain.CommunityMember
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		viewer, err = u.repo.GetViewer(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		member, err = u.repo.GetMember(gctx, memberID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, repoError(err, "User not found")
	}

	members := []domain.CommunityMember{*member}
	withTopGenres(members)

	score := discovery.NewEngine(*viewer).Breakdown(members[0])
	return &score, nil
}

func (u *communityUsecase) normalizeQuery(q domain.DiscoveryQuery) (domain.DiscoveryQuery, error) {
	key, ok := discovery.ParseSortKey(string(q.Sort))
	if !ok {
		return q, apperror.BadRequest("sort must be one of: compatibility, ratingCount, recency")
	}
	q.Sort = key

	q.Page, q.PageSize = clampPage(q.Page, q.PageSize, discovery.DefaultPageSize, u.maxPageSize)
	q.Search = strings.TrimSpace(q.Search)
	q.MinCompatibility = min(max(q.MinCompatibility, 0), 100)
	q.MinRatings = max(q.MinRatings, 0)

	genres := make([]string, 0, len(q.Genres))
	for _, g := range q.Genres {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	q.Genres = genres
	return q, nil
}

// withTopGenres derives each member's top genres from their genre counts.
func withTopGenres(members []domain.CommunityMember) {
	for i := range members {
		members[i].TopGenres = discovery.TopGenres(members[i].GenreCounts, members[i].FavoriteGenre)
	}
}

func (u *communityUsecase) loadScores(ctx context.Context, viewer *domain.Viewer, members []domain.CommunityMember) map[string]int {
	if len(members) == 0 {
		return nil
	}

	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = discovery.MemoKey(viewer.ID, viewer.DataVersion, m.ID, m.DataVersion)
	}
	scores, err := u.cache.GetMany(ctx, keys)
	if err != nil {
		logger.Log.Warn("compatibility cache read failed", "error", err)
		return nil
	}
	return scores
}

func (u *communityUsecase) storeScores(ctx context.Context, scores map[string]int) {
	if len(scores) == 0 {
		return
	}
	if err := u.cache.SetMany(ctx, scores); err != nil {
		logger.Log.Warn("compatibility cache write failed", "error", err, "entries", len(scores))
	}
}
