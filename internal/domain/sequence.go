package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SequenceRole tracks how a sequence item got its current content
type SequenceRole string

const (
	SequenceGenerated SequenceRole = "generated"
	SequenceEdited    SequenceRole = "edited"
)

// SequenceCount is the fixed size of an outreach message sequence. Every
// generate or modify action replaces the full set; partial patching is not
// supported.
const SequenceCount = 4

// SequenceItem is one of the four parts of a session's outreach message
// sequence. A session has either zero or exactly four current items; prior
// sets are superseded when a new set is materialized.
type SequenceItem struct {
	ID        uuid.UUID    `json:"seq_id"`
	SessionID uuid.UUID    `json:"session_id"`
	Role      SequenceRole `json:"role"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// SequenceRepository defines the interface for sequence storage
type SequenceRepository interface {
	// Replace atomically deletes every existing item for the session and
	// inserts the given contents as the new set, in order. Either all rows
	// change or none do.
	Replace(ctx context.Context, sessionID uuid.UUID, contents []string) ([]SequenceItem, error)
	// ListCurrent returns the SequenceCount most recently created items in
	// creation order. Fewer items are returned only when no full set has
	// been materialized yet.
	ListCurrent(ctx context.Context, sessionID uuid.UUID) ([]SequenceItem, error)
	// UpdateContent edits a single item in place and marks it edited.
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*SequenceItem, error)
}
