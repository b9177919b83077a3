package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mismarcadores/scoreboard/internal/apperrors"
	"github.com/mismarcadores/scoreboard/internal/models"
)

// Repository implements session data access over Postgres
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new sessions repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateSession inserts a session row
func (r *Repository) CreateSession(ctx context.Context, session *models.Session) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sessions (token, username, created_at)
		VALUES ($1, $2, $3)
	`, session.Token, session.Username, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSessionByToken looks up an active session by its token
func (r *Repository) GetSessionByToken(ctx context.Context, token uuid.UUID) (*models.Session, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT token, username, created_at FROM sessions WHERE token = $1
	`, token)

	var s models.Session
	if err := row.Scan(&s.Token, &s.Username, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// DeleteSession removes a session by token
func (r *Repository) DeleteSession(ctx context.Context, token uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidSession
	}
	return nil
}

// DeleteSessionsForUser removes every session owned by username
func (r *Repository) DeleteSessionsForUser(ctx context.Context, username string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE username = $1`, username); err != nil {
		return fmt.Errorf("failed to delete sessions for user: %w", err)
	}
	return nil
}
