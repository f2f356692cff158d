package usecase_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"go-movie-community-backend/internal/discovery"
	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ratings(ids ...string) []domain.Rating {
	out := make([]domain.Rating, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Rating{Movie: domain.MovieRef{ID: id, Title: "Movie " + id}, Score: 8})
	}
	return out
}

func communityMember(id string, version int64, genres []domain.GenreCount, movies ...string) domain.CommunityMember {
	return domain.CommunityMember{
		ID:          id,
		Name:        "Member " + id,
		RatedList:   ratings(movies...),
		RateCount:   len(movies),
		GenreCounts: genres,
		DataVersion: version,
		CreatedAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func communityFixture() (*domain.Viewer, []domain.CommunityMember) {
	viewer := &domain.Viewer{
		ID:          "u1",
		Ratings:     ratings("m1", "m2", "m3"),
		GenreCounts: []domain.GenreCount{{Genre: "Drama", Count: 3}},
		DataVersion: 4,
	}
	members := []domain.CommunityMember{
		communityMember("a", 1, []domain.GenreCount{{Genre: "drama", Count: 2}}, "m1", "m2"),
		communityMember("b", 2, []domain.GenreCount{{Genre: "Horror", Count: 1}}, "m9"),
	}
	return viewer, members
}

func TestDiscover(t *testing.T) {
	keyA := discovery.MemoKey("u1", 4, "a", 1)
	keyB := discovery.MemoKey("u1", 4, "b", 2)

	t.Run("Should reject unknown sort keys", func(t *testing.T) {
		uc := usecase.NewCommunityUsecase(new(MockCommunityRepo), nil, 50)
		_, err := uc.Discover(userCtx("u1"), domain.DiscoveryQuery{Sort: "name"})
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Should score, sort and cache fresh scores", func(t *testing.T) {
		repo, cache := new(MockCommunityRepo), new(MockScoreCache)
		uc := usecase.NewCommunityUsecase(repo, cache, 50)
		viewer, members := communityFixture()

		repo.On("GetViewer", mock.Anything, "u1").Return(viewer, nil)
		repo.On("ListMembers", mock.Anything, "u1").Return(members, nil)
		cache.On("GetMany", mock.Anything, []string{keyA, keyB}).Return(map[string]int{}, nil)
		cache.On("SetMany", mock.Anything, map[string]int{keyA: 84, keyB: 0}).Return(nil)

		page, err := uc.Discover(userCtx("u1"), domain.DiscoveryQuery{})
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "a", page.Items[0].ID)
		assert.Equal(t, 84, page.Items[0].Compatibility)
		assert.Equal(t, []string{"drama"}, page.Items[0].TopGenres)
		assert.Equal(t, 0, page.Items[1].Compatibility)
		assert.Equal(t, 2, page.Total)
		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, discovery.DefaultPageSize, page.PageSize)
		cache.AssertExpectations(t)
	})

	t.Run("Should only write scores missing from the cache", func(t *testing.T) {
		repo, cache := new(MockCommunityRepo), new(MockScoreCache)
		uc := usecase.NewCommunityUsecase(repo, cache, 50)
		viewer, members := communityFixture()

		repo.On("GetViewer", mock.Anything, "u1").Return(viewer, nil)
		repo.On("ListMembers", mock.Anything, "u1").Return(members, nil)
		cache.On("GetMany", mock.Anything, []string{keyA, keyB}).Return(map[string]int{keyA: 84}, nil)
		cache.On("SetMany", mock.Anything, map[string]int{keyB: 0}).Return(nil)

		_, err := uc.Discover(userCtx("u1"), domain.DiscoveryQuery{})
		require.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("Should survive cache failures", func(t *testing.T) {
		repo, cache := new(MockCommunityRepo), new(MockScoreCache)
		uc := usecase.NewCommunityUsecase(repo, cache, 50)
		viewer, members := communityFixture()

		repo.On("GetViewer", mock.Anything, "u1").Return(viewer, nil)
		repo.On("ListMembers", mock.Anything, "u1").Return(members, nil)
		cache.On("GetMany", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))
		cache.On("SetMany", mock.Anything, mock.Anything).Return(errors.New("redis down"))

		page, err := uc.Discover(userCtx("u1"), domain.DiscoveryQuery{})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
	})

	t.Run("Should apply filters and clamp the query", func(t *testing.T) {
		repo := new(MockCommunityRepo)
		uc := usecase.NewCommunityUsecase(repo, nil, 50)
		viewer, members := communityFixture()

		repo.On("GetViewer", mock.Anything, "u1").Return(viewer, nil)
		repo.On("ListMembers", mock.Anything, "u1").Return(members, nil)

		page, err := uc.Discover(userCtx("u1"), domain.DiscoveryQuery{
			MinCompatibility: 50,
			Page:             0,
			PageSize:         1000,
		})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "a", page.Items[0].ID)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 50, page.PageSize)
	})

	t.Run("Should give everyone the default score without viewer ratings", func(t *testing.T) {
		repo, cache := new(MockCommunityRepo), new(MockScoreCache)
		uc := usecase.NewCommunityUsecase(repo, cache, 50)
		_, members := communityFixture()

		repo.On("GetViewer", mock.Anything, "u1").Return(&domain.Viewer{ID: "u1"}, nil)
		repo.On("ListMembers", mock.Anything, "u1").Return(members, nil)

		page, err := uc.Discover(userCtx("u1"), domain.DiscoveryQuery{})
		require.NoError(t, err)
		for _, item := range page.Items {
			assert.Equal(t, discovery.DefaultScore, item.Compatibility)
		}
		cache.AssertNotCalled(t, "GetMany", mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "SetMany", mock.Anything, mock.Anything)
	})

	t.Run("Should fail when the viewer is missing", func(t *testing.T) {
		repo := new(MockCommunityRepo)
		uc := usecase.NewCommunityUsecase(repo, nil, 50)

		repo.On("GetViewer", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
		repo.On("ListMembers", mock.Anything, "u1").Return([]domain.CommunityMember{}, nil)

		_, err := uc.Discover(userCtx("u1"), domain.DiscoveryQuery{})
		assertAppError(t, err, http.StatusNotFound)
	})
}

func TestCompatibility(t *testing.T) {
	t.Run("Should refuse to compare the caller with themselves", func(t *testing.T) {
		uc := usecase.NewCommunityUsecase(new(MockCommunityRepo), nil, 50)
		_, err := uc.Compatibility(userCtx("u1"), "u1")
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Should explain the score", func(t *testing.T) {
		repo := new(MockCommunityRepo)
		uc := usecase.NewCommunityUsecase(repo, nil, 50)
		viewer, members := communityFixture()

		repo.On("GetViewer", mock.Anything, "u1").Return(viewer, nil)
		repo.On("GetMember", mock.Anything, "a").Return(&members[0], nil)

		score, err := uc.Compatibility(userCtx("u1"), "a")
		require.NoError(t, err)
		assert.Equal(t, 84, score.Compatibility)
		assert.Equal(t, 67, score.MovieScore)
		assert.Equal(t, 100, score.GenreScore)
		assert.Equal(t, []string{"m1", "m2"}, score.CommonMovieIDs)
		assert.Equal(t, []string{"drama"}, score.MatchedGenres)
	})

	t.Run("Should return not found for unknown members", func(t *testing.T) {
		repo := new(MockCommunityRepo)
		uc := usecase.NewCommunityUsecase(repo, nil, 50)
		viewer, _ := communityFixture()

		repo.On("GetViewer", mock.Anything, "u1").Return(viewer, nil)
		repo.On("GetMember", mock.Anything, "zz").Return(nil, domain.ErrNotFound)

		_, err := uc.Compatibility(userCtx("u1"), "zz")
		assertAppError(t, err, http.StatusNotFound)
	})
}
