package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/REDDITARUN/helix/internal/config"
	"github.com/REDDITARUN/helix/internal/domain"
	"github.com/REDDITARUN/helix/internal/llm"
	"github.com/REDDITARUN/helix/internal/vector"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testConfig() config.RAGConfig {
	return config.RAGConfig{
		ChunkSize:    1000,
		ChunkOverlap: 100,
		TopK:         30,
		RecentTurns:  3,
		PreviewChars: 500,
		UpsertBatch:  100,
	}
}

func newTestService(sessions *MockSessionRepository, turns *MockTurnRepository, appender *MockAppender, provider *MockProvider, index *MockIndex) *Service {
	return NewService(sessions, turns, appender, provider, index, testConfig())
}

func TestAugment_Success(t *testing.T) {
	mockSessions := new(MockSessionRepository)
	mockTurns := new(MockTurnRepository)
	mockAppender := new(MockAppender)
	mockProvider := new(MockProvider)
	mockIndex := new(MockIndex)
	svc := newTestService(mockSessions, mockTurns, mockAppender, mockProvider, mockIndex)

	ctx := context.Background()
	sessionID := uuid.New()
	embedding := []float32{0.1, 0.2, 0.3}

	mockSessions.On("Get", ctx, sessionID).Return(&domain.Session{ID: sessionID}, nil)
	mockTurns.On("ListRecentUserTurns", ctx, sessionID, 3).Return([]domain.Turn{
		{Role: domain.RoleUser, Content: "hiring a data engineer"},
		{Role: domain.RoleUser, Content: "we use snowflake"},
	}, nil)

	// Recent turns are joined oldest-first with single spaces
	mockProvider.On("Embed", ctx, "hiring a data engineer we use snowflake", llm.EmbedQuery).
		Return(embedding, nil)

	mockIndex.On("Query", ctx, embedding, 30, true).Return([]vector.Match{
		{ID: "doc-0", Score: 0.9, Metadata: map[string]any{"filename": "handbook.pdf", "text_preview": "Our team values..."}},
		{ID: "doc-1", Score: 0.8, Metadata: map[string]any{"filename": "jd.txt", "text_preview": "Responsibilities include..."}},
	}, nil)

	var block string
	mockAppender.On("Append", ctx, sessionID, domain.RoleAssistant, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { block = args.String(3) }).
		Return(&domain.Turn{}, nil)

	status, err := svc.Augment(ctx, sessionID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, status.State)
	assert.Equal(t, 2, status.Count)

	assert.True(t, strings.HasPrefix(block, "[RAG CONTEXT]"))
	assert.True(t, strings.HasSuffix(block, "[END RAG CONTEXT]"))
	assert.Contains(t, block, "Document 'handbook.pdf': Our team values...")
	assert.Contains(t, block, "Document 'jd.txt': Responsibilities include...")

	mockAppender.AssertExpectations(t)
}

func TestAugment_NoUserTurns(t *testing.T) {
	mockSessions := new(MockSessionRepository)
	mockTurns := new(MockTurnRepository)
	mockProvider := new(MockProvider)
	svc := newTestService(mockSessions, mockTurns, new(MockAppender), mockProvider, new(MockIndex))

	ctx := context.Background()
	sessionID := uuid.New()

	mockSessions.On("Get", ctx, sessionID).Return(&domain.Session{ID: sessionID}, nil)
	mockTurns.On("ListRecentUserTurns", ctx, sessionID, 3).Return([]domain.Turn{}, nil)

	status, err := svc.Augment(ctx, sessionID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusWarning, status.State)
	mockProvider.AssertNotCalled(t, "Embed", mock.Anything, mock.Anything, mock.Anything)
}

func TestAugment_NoUsableMatches(t *testing.T) {
	mockSessions := new(MockSessionRepository)
	mockTurns := new(MockTurnRepository)
	mockAppender := new(MockAppender)
	mockProvider := new(MockProvider)
	mockIndex := new(MockIndex)
	svc := newTestService(mockSessions, mockTurns, mockAppender, mockProvider, mockIndex)

	ctx := context.Background()
	sessionID := uuid.New()

	mockSessions.On("Get", ctx, sessionID).Return(&domain.Session{ID: sessionID}, nil)
	mockTurns.On("ListRecentUserTurns", ctx, sessionID, 3).Return([]domain.Turn{
		{Role: domain.RoleUser, Content: "anything"},
	}, nil)
	mockProvider.On("Embed", ctx, "anything", llm.EmbedQuery).Return([]float32{0.5}, nil)

	// Matches without a text preview are unusable
	mockIndex.On("Query", ctx, []float32{0.5}, 30, true).Return([]vector.Match{
		{ID: "doc-0", Score: 0.9, Metadata: map[string]any{"filename": "stub.txt"}},
	}, nil)

	status, err := svc.Augment(ctx, sessionID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusWarning, status.State)
	mockAppender.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAugment_EmbedFailure(t *testing.T) {
	mockSessions := new(MockSessionRepository)
	mockTurns := new(MockTurnRepository)
	mockProvider := new(MockProvider)
	svc := newTestService(mockSessions, mockTurns, new(MockAppender), mockProvider, new(MockIndex))

	ctx := context.Background()
	sessionID := uuid.New()

	mockSessions.On("Get", ctx, sessionID).Return(&domain.Session{ID: sessionID}, nil)
	mockTurns.On("ListRecentUserTurns", ctx, sessionID, 3).Return([]domain.Turn{
		{Role: domain.RoleUser, Content: "query"},
	}, nil)
	mockProvider.On("Embed", ctx, "query", llm.EmbedQuery).Return(nil, errors.New("dial timeout"))

	_, err := svc.Augment(ctx, sessionID)
	var ue *domain.UpstreamError
	assert.ErrorAs(t, err, &ue)
	assert.Equal(t, "gemini", ue.Service)
}

func TestIngest_TextFile(t *testing.T) {
	mockProvider := new(MockProvider)
	mockIndex := new(MockIndex)
	svc := newTestService(new(MockSessionRepository), new(MockTurnRepository), new(MockAppender), mockProvider, mockIndex)

	ctx := context.Background()
	content := []byte("We are a venture-backed company building recruiting tools.")

	mockProvider.On("Embed", ctx, mock.AnythingOfType("string"), llm.EmbedDocument).
		Return([]float32{0.1, 0.2}, nil)

	var upserted []vector.Vector
	mockIndex.On("Upsert", ctx, mock.AnythingOfType("[]vector.Vector")).
		Run(func(args mock.Arguments) { upserted = args.Get(1).([]vector.Vector) }).
		Return(1, nil)

	result, err := svc.Ingest(ctx, "about.txt", content)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, result.Status)
	assert.Equal(t, 1, result.VectorCount)
	assert.Equal(t, 1, result.ChunkCount)

	if assert.Len(t, upserted, 1) {
		v := upserted[0]
		assert.True(t, strings.HasPrefix(v.ID, "about.txt-0-"))
		assert.Equal(t, "about.txt", v.Metadata["filename"])
		assert.Equal(t, 0, v.Metadata["chunk_index"])
		assert.Equal(t, string(content), v.Metadata["text_preview"])
	}
}

func TestIngest_PreviewTruncated(t *testing.T) {
	mockProvider := new(MockProvider)
	mockIndex := new(MockIndex)
	svc := newTestService(new(MockSessionRepository), new(MockTurnRepository), new(MockAppender), mockProvider, mockIndex)

	ctx := context.Background()
	content := []byte(strings.Repeat("z", 900))

	mockProvider.On("Embed", ctx, mock.AnythingOfType("string"), llm.EmbedDocument).
		Return([]float32{0.1}, nil)

	var upserted []vector.Vector
	mockIndex.On("Upsert", ctx, mock.AnythingOfType("[]vector.Vector")).
		Run(func(args mock.Arguments) { upserted = args.Get(1).([]vector.Vector) }).
		Return(1, nil)

	_, err := svc.Ingest(ctx, "big.txt", content)
	assert.NoError(t, err)

	if assert.Len(t, upserted, 1) {
		preview := upserted[0].Metadata["text_preview"].(string)
		assert.Len(t, preview, 500)
	}
}

func TestIngest_PreviewKeepsRunesIntact(t *testing.T) {
	mockProvider := new(MockProvider)
	mockIndex := new(MockIndex)

	cfg := testConfig()
	cfg.ChunkSize = 2000
	svc := NewService(new(MockSessionRepository), new(MockTurnRepository), new(MockAppender), mockProvider, mockIndex, cfg)

	ctx := context.Background()
	// 600 two-byte runes; a byte-wise cut at 500 would land mid-rune
	content := []byte(strings.Repeat("é", 600))

	mockProvider.On("Embed", ctx, mock.AnythingOfType("string"), llm.EmbedDocument).
		Return([]float32{0.1}, nil)

	var upserted []vector.Vector
	mockIndex.On("Upsert", ctx, mock.AnythingOfType("[]vector.Vector")).
		Run(func(args mock.Arguments) { upserted = args.Get(1).([]vector.Vector) }).
		Return(1, nil)

	_, err := svc.Ingest(ctx, "accents.txt", content)
	assert.NoError(t, err)

	if assert.Len(t, upserted, 1) {
		preview := upserted[0].Metadata["text_preview"].(string)
		assert.True(t, utf8.ValidString(preview))
		assert.Equal(t, 500, utf8.RuneCountInString(preview))
	}
}

func TestIngest_EmptyFile(t *testing.T) {
	mockProvider := new(MockProvider)
	svc := newTestService(new(MockSessionRepository), new(MockTurnRepository), new(MockAppender), mockProvider, new(MockIndex))

	result, err := svc.Ingest(context.Background(), "blank.txt", []byte("   \n\t  "))
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusWarning, result.Status)
	mockProvider.AssertNotCalled(t, "Embed", mock.Anything, mock.Anything, mock.Anything)
}

func TestIngest_UnsupportedExtension(t *testing.T) {
	svc := newTestService(new(MockSessionRepository), new(MockTurnRepository), new(MockAppender), new(MockProvider), new(MockIndex))

	_, err := svc.Ingest(context.Background(), "resume.docx", []byte("binary"))
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestIngest_EmbedFailureAborts(t *testing.T) {
	mockProvider := new(MockProvider)
	mockIndex := new(MockIndex)
	svc := newTestService(new(MockSessionRepository), new(MockTurnRepository), new(MockAppender), mockProvider, mockIndex)

	ctx := context.Background()

	mockProvider.On("Embed", ctx, mock.AnythingOfType("string"), llm.EmbedDocument).
		Return(nil, errors.New("quota exceeded"))

	_, err := svc.Ingest(ctx, "doc.txt", []byte("some document text"))
	var ue *domain.UpstreamError
	assert.ErrorAs(t, err, &ue)
	mockIndex.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestIngest_BatchesUpserts(t *testing.T) {
	mockProvider := new(MockProvider)
	mockIndex := new(MockIndex)

	cfg := testConfig()
	cfg.ChunkSize = 10
	cfg.ChunkOverlap = 0
	cfg.UpsertBatch = 3
	svc := NewService(new(MockSessionRepository), new(MockTurnRepository), new(MockAppender), mockProvider, mockIndex, cfg)

	ctx := context.Background()
	// 80 chars in windows of 10 gives 8 chunks, so batches of 3, 3, 2
	content := []byte(strings.Repeat("abcdefghij", 8))

	mockProvider.On("Embed", ctx, mock.AnythingOfType("string"), llm.EmbedDocument).
		Return([]float32{0.1}, nil)

	var batchSizes []int
	mockIndex.On("Upsert", ctx, mock.AnythingOfType("[]vector.Vector")).
		Run(func(args mock.Arguments) {
			batchSizes = append(batchSizes, len(args.Get(1).([]vector.Vector)))
		}).
		Return(0, nil)

	result, err := svc.Ingest(ctx, "long.txt", content)
	assert.NoError(t, err)
	assert.Equal(t, 8, result.ChunkCount)
	assert.Equal(t, []int{3, 3, 2}, batchSizes)
}
