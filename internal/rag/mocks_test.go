package rag

import (
	"context"
	"time"

	"github.com/REDDITARUN/helix/internal/domain"
	"github.com/REDDITARUN/helix/internal/llm"
	"github.com/REDDITARUN/helix/internal/vector"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSessionRepository mocks the SessionRepository interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockTurnRepository mocks the TurnRepository interface
type MockTurnRepository struct {
	mock.Mock
}

func (m *MockTurnRepository) Create(ctx context.Context, turn *domain.Turn) error {
	args := m.Called(ctx, turn)
	return args.Error(0)
}

func (m *MockTurnRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Turn, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.Turn), args.Error(1)
}

func (m *MockTurnRepository) ListRecentUserTurns(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.Turn, error) {
	args := m.Called(ctx, sessionID, limit)
	return args.Get(0).([]domain.Turn), args.Error(1)
}

// MockAppender mocks the Appender interface
type MockAppender struct {
	mock.Mock
}

func (m *MockAppender) Append(ctx context.Context, sessionID uuid.UUID, role domain.TurnRole, content string) (*domain.Turn, error) {
	args := m.Called(ctx, sessionID, role, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Turn), args.Error(1)
}

// MockProvider mocks llm.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProvider) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockProvider) Converse(ctx context.Context, history []llm.Turn) (*llm.Result, error) {
	args := m.Called(ctx, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Result), args.Error(1)
}

func (m *MockProvider) Generate(ctx context.Context, prompt string, cfg llm.GenerationConfig) (string, error) {
	args := m.Called(ctx, prompt, cfg)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) Embed(ctx context.Context, text string, task llm.EmbeddingTask) ([]float32, error) {
	args := m.Called(ctx, text, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockIndex mocks vector.Index
type MockIndex struct {
	mock.Mock
}

func (m *MockIndex) Dimension(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockIndex) Upsert(ctx context.Context, vectors []vector.Vector) (int, error) {
	args := m.Called(ctx, vectors)
	return args.Int(0), args.Error(1)
}

func (m *MockIndex) Query(ctx context.Context, values []float32, topK int, includeMetadata bool) ([]vector.Match, error) {
	args := m.Called(ctx, values, topK, includeMetadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vector.Match), args.Error(1)
}
