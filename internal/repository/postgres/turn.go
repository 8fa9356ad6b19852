package postgres

import (
	"context"
	"fmt"

	"github.com/REDDITARUN/helix/internal/domain"
	"github.com/google/uuid"
)

// TurnRepository implements domain.TurnRepository
type TurnRepository struct {
	pool Querier
}

// NewTurnRepository creates a new turn repository
func NewTurnRepository(pool Querier) *TurnRepository {
	return &TurnRepository{pool: pool}
}

// Create inserts a new immutable turn
func (r *TurnRepository) Create(ctx context.Context, turn *domain.Turn) error {
	query := `
		INSERT INTO messages (id, session_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		turn.ID,
		turn.SessionID,
		turn.Role,
		turn.Content,
		turn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create turn: %w", err)
	}
	return nil
}

// ListBySession retrieves all turns for a session in creation order.
// Ties on created_at are broken by insertion order via the seq column.
func (r *TurnRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Turn, error) {
	query := `
		SELECT id, session_id, role, content, created_at
		FROM messages
		WHERE session_id = $1
		ORDER BY created_at ASC, seq ASC
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var t domain.Turn
		var roleStr string
		if err := rows.Scan(&t.ID, &t.SessionID, &roleStr, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		t.Role = domain.TurnRole(roleStr)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read turns: %w", err)
	}
	return turns, nil
}

// ListRecentUserTurns retrieves the latest user turns, returned oldest first
func (r *TurnRepository) ListRecentUserTurns(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.Turn, error) {
	query := `
		SELECT id, session_id, role, content, created_at
		FROM messages
		WHERE session_id = $1 AND role = 'user'
		ORDER BY created_at DESC, seq DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list user turns: %w", err)
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var t domain.Turn
		var roleStr string
		if err := rows.Scan(&t.ID, &t.SessionID, &roleStr, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		t.Role = domain.TurnRole(roleStr)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user turns: %w", err)
	}

	// Reverse to return chronological order (oldest first)
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	return turns, nil
}
