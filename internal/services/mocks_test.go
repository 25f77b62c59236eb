package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/pathwise-labs/insights-service/internal/cache"
	"github.com/pathwise-labs/insights-service/internal/models"
	"github.com/pathwise-labs/insights-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockSubjectRepository is a mock implementation of SubjectRepository
type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) GetBySubject(ctx context.Context, subjectID uint) ([]*models.Topic, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Topic), args.Error(1)
}

func (m *MockTopicRepository) CountBySubject(ctx context.Context, subjectID uint) (int64, error) {
	args := m.Called(ctx, subjectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTopicRepository) GetLessonText(ctx context.Context, topicID uint) (*string, error) {
	args := m.Called(ctx, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

// MockAttemptRepository is a mock implementation of AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) GetBySubject(ctx context.Context, userID string, subjectID uint) ([]*models.QuizAttempt, error) {
	args := m.Called(ctx, userID, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) CountBySubject(ctx context.Context, userID string, subjectID uint) (int64, error) {
	args := m.Called(ctx, userID, subjectID)
	return args.Get(0).(int64), args.Error(1)
}

// MockWeakLessonRepository is a mock implementation of WeakLessonRepository
type MockWeakLessonRepository struct {
	mock.Mock
}

func (m *MockWeakLessonRepository) Create(ctx context.Context, record *models.WeakLessonRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockWeakLessonRepository) ListByUser(ctx context.Context, userID string, filters repositories.WeakLessonFilters) ([]*models.WeakLessonRecord, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WeakLessonRecord), args.Error(1)
}

func (m *MockWeakLessonRepository) CountByUser(ctx context.Context, userID string, filters repositories.WeakLessonFilters) (int64, error) {
	args := m.Called(ctx, userID, filters)
	return args.Get(0).(int64), args.Error(1)
}

// MockGameSessionRepository is a mock implementation of GameSessionRepository
type MockGameSessionRepository struct {
	mock.Mock
}

func (m *MockGameSessionRepository) Create(ctx context.Context, session *models.GameSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockGameSessionRepository) ListByUser(ctx context.Context, userID string, filters repositories.GameSessionFilters) ([]*models.GameSession, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GameSession), args.Error(1)
}

// mockRepository bundles the per-entity mocks behind the aggregate
// Repository interface.
type mockRepository struct {
	subject     *MockSubjectRepository
	topic       *MockTopicRepository
	attempt     *MockAttemptRepository
	weakLesson  *MockWeakLessonRepository
	gameSession *MockGameSessionRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		subject:     new(MockSubjectRepository),
		topic:       new(MockTopicRepository),
		attempt:     new(MockAttemptRepository),
		weakLesson:  new(MockWeakLessonRepository),
		gameSession: new(MockGameSessionRepository),
	}
}

func (r *mockRepository) Subject() repositories.SubjectRepository         { return r.subject }
func (r *mockRepository) Topic() repositories.TopicRepository             { return r.topic }
func (r *mockRepository) Attempt() repositories.AttemptRepository         { return r.attempt }
func (r *mockRepository) WeakLesson() repositories.WeakLessonRepository   { return r.weakLesson }
func (r *mockRepository) GameSession() repositories.GameSessionRepository { return r.gameSession }

// mockCacheService is a map-backed CacheService for tests.
type mockCacheService struct {
	entries map[string][]byte
}

// testLogger builds a quiet slog logger for service tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newMockCacheService() *mockCacheService {
	return &mockCacheService{entries: make(map[string][]byte)}
}

func (c *mockCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *mockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *mockCacheService) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}
