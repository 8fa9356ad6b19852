package sequence

import (
	"context"
	"time"

	"github.com/REDDITARUN/helix/internal/domain"
	"github.com/REDDITARUN/helix/internal/llm"
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

// MockSequenceRepository mocks the SequenceRepository interface
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) Replace(ctx context.Context, sessionID uuid.UUID, contents []string) ([]domain.SequenceItem, error) {
	args := m.Called(ctx, sessionID, contents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SequenceItem), args.Error(1)
}

func (m *MockSequenceRepository) ListCurrent(ctx context.Context, sessionID uuid.UUID) ([]domain.SequenceItem, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.SequenceItem), args.Error(1)
}

func (m *MockSequenceRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*domain.SequenceItem, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SequenceItem), args.Error(1)
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

// MockRecorder mocks the Recorder interface
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordActionOutcome(ctx context.Context, sessionID uuid.UUID, heading string, items []domain.SequenceItem) {
	m.Called(ctx, sessionID, heading, items)
}
