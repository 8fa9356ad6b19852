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

// SessionRepository implements domain.SessionRepository
type SessionRepository struct {
	pool Querier
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(pool Querier) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (id, created_at, updated_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.pool.Exec(ctx, query, session.ID, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	query := `
		SELECT id, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`
	var s domain.Session
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "session", ID: id.String()}
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE sessions SET updated_at = $1 WHERE id = $2`
	_, err := r.pool.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}
