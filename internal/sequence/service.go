package sequence

import (
	"context"
	"fmt"
	"strings"

	"github.com/REDDITARUN/helix/internal/domain"
	"github.com/REDDITARUN/helix/internal/llm"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Decoding configurations: tighter than open conversation, bounded output
var (
	generationConfig = llm.GenerationConfig{
		Temperature:     0.8,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 4096,
	}
	modificationConfig = llm.GenerationConfig{
		Temperature:     0.6,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 4096,
	}
)

// Recorder appends a synthetic transcript turn describing an action outcome
type Recorder interface {
	RecordActionOutcome(ctx context.Context, sessionID uuid.UUID, heading string, items []domain.SequenceItem)
}

// Service materializes and maintains a session's 4-part outreach sequence
type Service struct {
	sessions  domain.SessionRepository
	sequences domain.SequenceRepository
	provider  llm.Provider
	recorder  Recorder
}

// NewService creates a new sequence service. recorder may be nil when no
// transcript should be annotated (tests, offline tooling).
func NewService(sessions domain.SessionRepository, sequences domain.SequenceRepository, provider llm.Provider, recorder Recorder) *Service {
	return &Service{
		sessions:  sessions,
		sequences: sequences,
		provider:  provider,
		recorder:  recorder,
	}
}

// Generate builds the deterministic generation prompt, invokes the model
// with constrained decoding, and atomically replaces the session's
// sequence set with the four parsed parts.
func (s *Service) Generate(ctx context.Context, sessionID uuid.UUID, gctx domain.GenerationContext) ([]domain.SequenceItem, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	prompt := BuildGenerationPrompt(gctx)

	raw, err := s.provider.Generate(ctx, prompt, generationConfig)
	if err != nil {
		return nil, &domain.UpstreamError{Service: "gemini", Err: err}
	}

	items, err := s.parseAndReplace(ctx, sessionID, raw)
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.RecordActionOutcome(ctx, sessionID, "Generated Sequences:", items)
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Str("target_role", gctx.TargetRole).
		Msg("Materialized new sequence set")

	return items, nil
}

// Modify re-emits the full replacement set from the four current items and
// the user's instruction, then atomically swaps the stored set.
func (s *Service) Modify(ctx context.Context, sessionID uuid.UUID, instruction string) ([]domain.SequenceItem, error) {
	if strings.TrimSpace(instruction) == "" {
		return nil, &domain.ValidationError{Field: "instruction", Message: "must not be empty"}
	}

	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	current, err := s.sequences.ListCurrent(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current sequences: %w", err)
	}
	if len(current) != domain.SequenceCount {
		return nil, &domain.ValidationError{
			Field:   "sequences",
			Message: fmt.Sprintf("need %d existing sequences to modify, found %d", domain.SequenceCount, len(current)),
		}
	}

	previous := make([]string, len(current))
	for i, item := range current {
		previous[i] = item.Content
	}

	prompt := BuildModificationPrompt(instruction, previous)

	raw, err := s.provider.Generate(ctx, prompt, modificationConfig)
	if err != nil {
		return nil, &domain.UpstreamError{Service: "gemini", Err: err}
	}

	items, err := s.parseAndReplace(ctx, sessionID, raw)
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.RecordActionOutcome(ctx, sessionID, "Modified Sequences:", items)
	}

	return items, nil
}

// parseAndReplace is the shared parse-and-persist routine. Parsing happens
// before any write, and the repository swaps the set in one transaction,
// so a malformed response or failed write leaves prior state intact.
func (s *Service) parseAndReplace(ctx context.Context, sessionID uuid.UUID, raw string) ([]domain.SequenceItem, error) {
	contents, err := ParseSequences(raw)
	if err != nil {
		return nil, err
	}

	items, err := s.sequences.Replace(ctx, sessionID, contents)
	if err != nil {
		return nil, &domain.UpstreamError{Service: "postgres", Err: err}
	}
	return items, nil
}

// List returns the session's current sequence set in creation order
func (s *Service) List(ctx context.Context, sessionID uuid.UUID) ([]domain.SequenceItem, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.sequences.ListCurrent(ctx, sessionID)
}

// EditItem updates a single item's content in place and marks it edited,
// leaving the other three untouched.
func (s *Service) EditItem(ctx context.Context, itemID uuid.UUID, content string) (*domain.SequenceItem, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &domain.ValidationError{Field: "content", Message: "must not be empty"}
	}
	return s.sequences.UpdateContent(ctx, itemID, content)
}
