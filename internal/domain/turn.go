package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TurnRole represents the author of a transcript turn
type TurnRole string

const (
	// RoleSystem marks the system directive that steers the assistant.
	// Exactly one system turn leads every transcript sent to the model.
	RoleSystem TurnRole = "system"
	RoleUser   TurnRole = "user"
	// RoleAssistant covers model replies and synthetic turns the backend
	// records on the model's behalf, such as RAG context.
	RoleAssistant TurnRole = "assistant"
	// RoleTool marks a synthetic turn summarizing the outcome of a routed
	// action, keeping tool results distinguishable from model replies.
	RoleTool TurnRole = "tool"
)

// Turn is one immutable utterance in a session transcript. Ordering is by
// creation timestamp, ties broken by insertion order.
type Turn struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Role      TurnRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TurnRepository defines the interface for transcript storage
type TurnRepository interface {
	Create(ctx context.Context, turn *Turn) error
	// ListBySession returns all turns in creation order (oldest first).
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Turn, error)
	// ListRecentUserTurns returns up to limit of the most recent user
	// turns, oldest first.
	ListRecentUserTurns(ctx context.Context, sessionID uuid.UUID, limit int) ([]Turn, error)
}
