package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session represents one continuous conversation. It owns its turns and
// sequence items; neither is shared across sessions. Deletion is an
// administrative concern, not part of this API.
type Session struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	// Touch advances the session's updated_at timestamp.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}
