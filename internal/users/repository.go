package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mismarcadores/scoreboard/internal/apperrors"
	"github.com/mismarcadores/scoreboard/internal/models"
	"github.com/mismarcadores/scoreboard/internal/storage"
)

// Repository implements user data access over Postgres
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new users repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateUser inserts a new user
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, first_name, last_name, username, password_hash, email, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.FirstName, user.LastName, user.Username, user.PasswordHash, user.Email, user.IsAdmin)
	if err != nil {
		if storage.IsUniqueViolation(err, "") {
			return apperrors.ErrDuplicateName
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID
func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, username, password_hash, email, is_admin, created_at
		FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

// GetUserByUsername retrieves a user by their unique username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, username, password_hash, email, is_admin, created_at
		FROM users WHERE username = $1
	`, username)
	return scanUser(row)
}

// ListUsers retrieves all users ordered by username
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, username, password_hash, email, is_admin, created_at
		FROM users ORDER BY username
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	list := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.PasswordHash, &u.Email, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.PasswordHash, &u.Email, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUnknownUser
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
