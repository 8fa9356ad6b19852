package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/REDDITARUN/helix/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SequenceRepository implements domain.SequenceRepository
type SequenceRepository struct {
	pool Querier
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(pool Querier) *SequenceRepository {
	return &SequenceRepository{pool: pool}
}

// Replace swaps the session's entire sequence set inside one transaction.
// Any failure after the delete rolls the delete back too; callers never
// observe a partial set.
func (r *SequenceRepository) Replace(ctx context.Context, sessionID uuid.UUID, contents []string) ([]domain.SequenceItem, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM sequences WHERE session_id = $1`, sessionID); err != nil {
		return nil, fmt.Errorf("failed to delete existing sequences: %w", err)
	}

	now := time.Now().UTC()
	items := make([]domain.SequenceItem, 0, len(contents))
	query := `
		INSERT INTO sequences (id, session_id, role, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, content := range contents {
		item := domain.SequenceItem{
			ID:        uuid.New(),
			SessionID: sessionID,
			Role:      domain.SequenceGenerated,
			Content:   content,
			// Spread timestamps so creation order is stable under sort
			CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
			UpdatedAt: now.Add(time.Duration(i) * time.Microsecond),
		}
		if _, err := tx.Exec(ctx, query,
			item.ID, item.SessionID, item.Role, item.Content, item.CreatedAt, item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to insert sequence %d: %w", i+1, err)
		}
		items = append(items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit sequence replacement: %w", err)
	}
	return items, nil
}

// ListCurrent returns the most recent full set in creation order
func (r *SequenceRepository) ListCurrent(ctx context.Context, sessionID uuid.UUID) ([]domain.SequenceItem, error) {
	query := `
		SELECT id, session_id, role, content, created_at, updated_at
		FROM sequences
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, sessionID, domain.SequenceCount)
	if err != nil {
		return nil, fmt.Errorf("failed to list sequences: %w", err)
	}
	defer rows.Close()

	var items []domain.SequenceItem
	for rows.Next() {
		var s domain.SequenceItem
		var roleStr string
		if err := rows.Scan(&s.ID, &s.SessionID, &roleStr, &s.Content, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sequence: %w", err)
		}
		s.Role = domain.SequenceRole(roleStr)
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sequences: %w", err)
	}

	// Reverse to creation order (oldest first)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}

	return items, nil
}

// UpdateContent edits one item in place without touching its siblings
func (r *SequenceRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*domain.SequenceItem, error) {
	query := `
		UPDATE sequences
		SET content = $1, role = $2, updated_at = $3
		WHERE id = $4
		RETURNING id, session_id, role, content, created_at, updated_at
	`
	var s domain.SequenceItem
	var roleStr string
	err := r.pool.QueryRow(ctx, query, content, domain.SequenceEdited, time.Now().UTC(), id).
		Scan(&s.ID, &s.SessionID, &roleStr, &s.Content, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "sequence", ID: id.String()}
		}
		return nil, fmt.Errorf("failed to update sequence: %w", err)
	}
	s.Role = domain.SequenceRole(roleStr)
	return &s, nil
}
