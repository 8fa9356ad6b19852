package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/REDDITARUN/helix/internal/domain"
	"github.com/REDDITARUN/helix/internal/llm"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service owns session transcripts and routes model replies. Clients are
// expected to serialize requests within a single session; concurrent turns
// on one session are undefined behavior.
type Service struct {
	sessions domain.SessionRepository
	turns    domain.TurnRepository
	provider llm.Provider
}

// NewService creates a new chat service
func NewService(sessions domain.SessionRepository, turns domain.TurnRepository, provider llm.Provider) *Service {
	return &Service{
		sessions: sessions,
		turns:    turns,
		provider: provider,
	}
}

// Reply is the result of one chat turn
type Reply struct {
	SessionID uuid.UUID `json:"session_id"`
	Message   string    `json:"ai_message"`
	Action    *Action   `json:"action,omitempty"`
}

// Action is a routed structured invocation for the caller to execute
type Action struct {
	Type        OutcomeKind               `json:"type"`
	Context     *domain.GenerationContext `json:"context,omitempty"`
	Instruction string                    `json:"instruction,omitempty"`
}

// StartSession creates a fresh session seeded with the system directive
func (s *Service) StartSession(ctx context.Context) (*domain.Session, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if _, err := s.Append(ctx, session.ID, domain.RoleSystem, SystemDirective); err != nil {
		return nil, fmt.Errorf("failed to seed system directive: %w", err)
	}

	return session, nil
}

// Resume returns the existing session or NotFound; it never auto-creates
func (s *Service) Resume(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// Append persists one immutable turn and advances the session timestamp
func (s *Service) Append(ctx context.Context, sessionID uuid.UUID, role domain.TurnRole, content string) (*domain.Turn, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &domain.ValidationError{Field: "content", Message: "must not be empty"}
	}

	turn := &domain.Turn{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.turns.Create(ctx, turn); err != nil {
		return nil, err
	}

	if err := s.sessions.Touch(ctx, sessionID, turn.CreatedAt); err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to touch session")
	}

	return turn, nil
}

// Transcript returns the stored turns in creation order
func (s *Service) Transcript(ctx context.Context, sessionID uuid.UUID) ([]domain.Turn, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.turns.ListBySession(ctx, sessionID)
}

// Reconstruct builds the wire transcript for the model. The system
// directive is always element 0 and appears exactly once: missing copies
// are re-inserted, stored copies (by role or verbatim content) are
// deduplicated.
func (s *Service) Reconstruct(ctx context.Context, sessionID uuid.UUID) ([]llm.Turn, error) {
	stored, err := s.turns.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	history := []llm.Turn{{Role: llm.RoleModel, Text: SystemDirective}}
	for _, t := range stored {
		if t.Role == domain.RoleSystem || t.Content == SystemDirective {
			continue
		}
		role := llm.RoleModel
		if t.Role == domain.RoleUser {
			role = llm.RoleUser
		}
		history = append(history, llm.Turn{Role: role, Text: t.Content})
	}

	return history, nil
}

// SendMessage runs one chat turn: append the user message, send the full
// transcript with tools declared, route the reply, and record the outcome.
// Detected actions are returned for the caller to execute, matching the
// request-per-turn model.
func (s *Service) SendMessage(ctx context.Context, sessionID uuid.UUID, text string) (*Reply, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	if _, err := s.Append(ctx, sessionID, domain.RoleUser, text); err != nil {
		return nil, err
	}

	history, err := s.Reconstruct(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result, err := s.provider.Converse(ctx, history)
	if err != nil {
		// Record the failure as a visible turn before surfacing it
		if _, aerr := s.Append(ctx, sessionID, domain.RoleAssistant, fmt.Sprintf("[Error communicating with AI: %v]", err)); aerr != nil {
			log.Error().Err(aerr).Msg("failed to record model error turn")
		}
		return nil, &domain.UpstreamError{Service: "gemini", Err: err}
	}

	outcome := Route(result)

	if _, err := s.Append(ctx, sessionID, domain.RoleAssistant, outcome.Text); err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to record assistant turn")
	}

	reply := &Reply{SessionID: sessionID, Message: outcome.Text}
	switch outcome.Kind {
	case OutcomeGenerate:
		reply.Action = &Action{Type: OutcomeGenerate, Context: outcome.Generate}
	case OutcomeModify:
		reply.Action = &Action{Type: OutcomeModify, Instruction: outcome.Instruction}
	}

	return reply, nil
}

// RecordActionOutcome appends a synthetic tool turn summarizing a
// materialized sequence set so the transcript reflects what the action did.
func (s *Service) RecordActionOutcome(ctx context.Context, sessionID uuid.UUID, heading string, items []domain.SequenceItem) {
	var b strings.Builder
	b.WriteString(heading)
	for i, item := range items {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, item.Content))
	}
	if _, err := s.Append(ctx, sessionID, domain.RoleTool, b.String()); err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to record action outcome turn")
	}
}
