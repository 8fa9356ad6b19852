// Package rag augments chat transcripts with context retrieved from
// uploaded documents, and runs the ingestion pipeline (extract, chunk,
// embed, upsert) that feeds the vector index.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/REDDITARUN/helix/internal/config"
	"github.com/REDDITARUN/helix/internal/domain"
	"github.com/REDDITARUN/helix/internal/llm"
	"github.com/REDDITARUN/helix/internal/vector"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Appender adds a turn to a session transcript
type Appender interface {
	Append(ctx context.Context, sessionID uuid.UUID, role domain.TurnRole, content string) (*domain.Turn, error)
}

// Service implements retrieval augmentation and document ingestion
type Service struct {
	sessions domain.SessionRepository
	turns    domain.TurnRepository
	appender Appender
	provider llm.Provider
	index    vector.Index
	cfg      config.RAGConfig
}

// NewService creates a new RAG service
func NewService(
	sessions domain.SessionRepository,
	turns domain.TurnRepository,
	appender Appender,
	provider llm.Provider,
	index vector.Index,
	cfg config.RAGConfig,
) *Service {
	return &Service{
		sessions: sessions,
		turns:    turns,
		appender: appender,
		provider: provider,
		index:    index,
		cfg:      cfg,
	}
}

// Augment retrieves document context for the session's recent user turns
// and appends it to the transcript as an assistant turn. Soft outcomes
// ("no user turns yet", "no relevant documents") come back as warning
// statuses, not errors. Sequence items are never touched.
func (s *Service) Augment(ctx context.Context, sessionID uuid.UUID) (*domain.Status, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	recent, err := s.turns.ListRecentUserTurns(ctx, sessionID, s.cfg.RecentTurns)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent user turns: %w", err)
	}
	if len(recent) == 0 {
		return &domain.Status{State: domain.StatusWarning, Message: "No user messages found for RAG context"}, nil
	}

	parts := make([]string, len(recent))
	for i, t := range recent {
		parts[i] = t.Content
	}
	combined := strings.Join(parts, " ")

	embedding, err := s.provider.Embed(ctx, combined, llm.EmbedQuery)
	if err != nil {
		return nil, &domain.UpstreamError{Service: "gemini", Err: err}
	}

	matches, err := s.index.Query(ctx, embedding, s.cfg.TopK, true)
	if err != nil {
		return nil, &domain.UpstreamError{Service: "pinecone", Err: err}
	}

	var lines []string
	for _, m := range matches {
		preview, ok := m.Metadata["text_preview"].(string)
		if !ok || preview == "" {
			continue
		}
		filename, _ := m.Metadata["filename"].(string)
		if filename == "" {
			filename = "unknown"
		}
		lines = append(lines, fmt.Sprintf("Document '%s': %s", filename, preview))
	}

	if len(lines) == 0 {
		return &domain.Status{State: domain.StatusWarning, Message: "No relevant documents found"}, nil
	}

	block := fmt.Sprintf(
		"[RAG CONTEXT]\n\nThe following are relevant documents to help with the conversation:\n\n%s\n\n[END RAG CONTEXT]",
		strings.Join(lines, "\n\n"),
	)

	if _, err := s.appender.Append(ctx, sessionID, domain.RoleAssistant, block); err != nil {
		return nil, fmt.Errorf("failed to append RAG context turn: %w", err)
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Int("doc_count", len(lines)).
		Msg("RAG context added to transcript")

	return &domain.Status{
		State:   domain.StatusSuccess,
		Message: "RAG context added successfully",
		Count:   len(lines),
	}, nil
}

// IngestResult summarizes one processed document
type IngestResult struct {
	Filename    string `json:"filename"`
	VectorCount int    `json:"vector_count"`
	ChunkCount  int    `json:"chunk_count"`
	Status      string `json:"status"`
	Message     string `json:"message"`
}

// Ingest runs the document pipeline: extract text, chunk it, embed each
// chunk as a retrieval document, and upsert the vectors with preview
// metadata. Empty extractions and zero-chunk texts are soft warnings;
// embed or upsert failures abort the whole document.
func (s *Service) Ingest(ctx context.Context, filename string, data []byte) (*IngestResult, error) {
	text, err := ExtractText(filename, data)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return &IngestResult{
			Filename: filename,
			Status:   domain.StatusWarning,
			Message:  "No text content found in the file.",
		}, nil
	}

	chunks := SplitText(text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	if len(chunks) == 0 {
		return &IngestResult{
			Filename: filename,
			Status:   domain.StatusWarning,
			Message:  "Could not process text into meaningful chunks.",
		}, nil
	}

	log.Info().
		Str("filename", filename).
		Int("chars", len(text)).
		Int("chunks", len(chunks)).
		Msg("Chunked document for ingestion")

	vectors := make([]vector.Vector, 0, len(chunks))
	for i, chunk := range chunks {
		embedding, err := s.provider.Embed(ctx, chunk, llm.EmbedDocument)
		if err != nil {
			return nil, &domain.UpstreamError{Service: "gemini", Err: err}
		}

		// Previews are truncated by rune, not byte, so a multi-byte
		// character is never split mid-sequence.
		preview := chunk
		if runes := []rune(preview); len(runes) > s.cfg.PreviewChars {
			preview = string(runes[:s.cfg.PreviewChars])
		}

		vectors = append(vectors, vector.Vector{
			ID:     fmt.Sprintf("%s-%d-%s", filename, i, uuid.New()),
			Values: embedding,
			Metadata: map[string]any{
				"filename":     filename,
				"chunk_index":  i,
				"text_preview": preview,
			},
		})
	}

	upserted := 0
	for start := 0; start < len(vectors); start += s.cfg.UpsertBatch {
		end := start + s.cfg.UpsertBatch
		if end > len(vectors) {
			end = len(vectors)
		}
		count, err := s.index.Upsert(ctx, vectors[start:end])
		if err != nil {
			return nil, &domain.UpstreamError{Service: "pinecone", Err: err}
		}
		upserted += count
	}

	log.Info().
		Str("filename", filename).
		Int("vectors", upserted).
		Msg("Document indexed")

	return &IngestResult{
		Filename:    filename,
		VectorCount: upserted,
		ChunkCount:  len(chunks),
		Status:      domain.StatusSuccess,
		Message:     fmt.Sprintf("Successfully processed and indexed %q.", filename),
	}, nil
}
