package usecase_test

import (
	"context"

	"go-movie-community-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockMovieRepo struct {
	mock.Mock
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.Called(ctx, movie).Error(0)
}
func (m *MockMovieRepo) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}
func (m *MockMovieRepo) List(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Movie), args.Get(1).(int64), args.Error(2)
}
func (m *MockMovieRepo) Update(ctx context.Context, movie *domain.Movie) error {
	return m.Called(ctx, movie).Error(0)
}
func (m *MockMovieRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockMovieRepo) SetPosterURL(ctx context.Context, id, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

type MockPosterStorage struct {
	mock.Mock
}

func (m *MockPosterStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

type MockRatingRepo struct {
	mock.Mock
}

func (m *MockRatingRepo) Upsert(ctx context.Context, userID, movieID string, score int, comment string) (*domain.Rating, error) {
	args := m.Called(ctx, userID, movieID, score, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}
func (m *MockRatingRepo) Delete(ctx context.Context, userID, movieID string) error {
	return m.Called(ctx, userID, movieID).Error(0)
}
func (m *MockRatingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Rating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rating), args.Error(1)
}
func (m *MockRatingRepo) ListByMovie(ctx context.Context, movieID string, limit, offset int) ([]domain.MovieReview, int64, error) {
	args := m.Called(ctx, movieID, limit, offset)
	return args.Get(0).([]domain.MovieReview), args.Get(1).(int64), args.Error(2)
}
func (m *MockRatingRepo) GenreCounts(ctx context.Context, userID string) ([]domain.GenreCount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GenreCount), args.Error(1)
}

type MockCommunityRepo struct {
	mock.Mock
}

func (m *MockCommunityRepo) GetViewer(ctx context.Context, userID string) (*domain.Viewer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Viewer), args.Error(1)
}
func (m *MockCommunityRepo) ListMembers(ctx context.Context, excludeUserID string) ([]domain.CommunityMember, error) {
	args := m.Called(ctx, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommunityMember), args.Error(1)
}
func (m *MockCommunityRepo) GetMember(ctx context.Context, userID string) (*domain.CommunityMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommunityMember), args.Error(1)
}

type MockScoreCache struct {
	mock.Mock
}

func (m *MockScoreCache) GetMany(ctx context.Context, keys []string) (map[string]int, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}
func (m *MockScoreCache) SetMany(ctx context.Context, scores map[string]int) error {
	return m.Called(ctx, scores).Error(0)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminStats), args.Error(1)
}
func (m *MockAdminRepo) ListUsers(ctx context.Context, role string, page, pageSize int) ([]domain.AdminUser, int64, error) {
	args := m.Called(ctx, role, page, pageSize)
	return args.Get(0).([]domain.AdminUser), args.Get(1).(int64), args.Error(2)
}
func (m *MockAdminRepo) GetUser(ctx context.Context, userID string) (*domain.AdminUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminUser), args.Error(1)
}
func (m *MockAdminRepo) SetDisabled(ctx context.Context, userID string, disable bool) error {
	return m.Called(ctx, userID, disable).Error(0)
}
func (m *MockAdminRepo) SetRole(ctx context.Context, userID string, role string) error {
	return m.Called(ctx, userID, role).Error(0)
}
func (m *MockAdminRepo) DeleteUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockAdminRepo) ExportRatings(ctx context.Context) ([]domain.RatingExportRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RatingExportRow), args.Error(1)
}

func userCtx(id string) context.Context {
	return domain.WithUser(context.Background(), id, id+"@example.com", domain.RoleUser)
}

func adminCtx(id string) context.Context {
	return domain.WithUser(context.Background(), id, id+"@example.com", domain.RoleAdmin)
}
