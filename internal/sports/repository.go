package sports

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

// Repository implements sport data access over Postgres
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new sports repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateSport inserts a new sport
func (r *Repository) CreateSport(ctx context.Context, sport *models.Sport) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sports (id, name)
		VALUES ($1, $2)
	`, sport.ID, sport.Name)
	if err != nil {
		if storage.IsUniqueViolation(err, "") {
			return apperrors.ErrDuplicateName
		}
		return fmt.Errorf("failed to create sport: %w", err)
	}
	return nil
}

// GetSport retrieves a sport by ID
func (r *Repository) GetSport(ctx context.Context, id uuid.UUID) (*models.Sport, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name FROM sports WHERE id = $1
	`, id)
	return scanSport(row)
}

// GetSportByName retrieves a sport by its unique name
func (r *Repository) GetSportByName(ctx context.Context, name string) (*models.Sport, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name FROM sports WHERE name = $1
	`, name)
	return scanSport(row)
}

// ListSports retrieves all sports ordered by name
func (r *Repository) ListSports(ctx context.Context) ([]models.Sport, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name FROM sports ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	defer rows.Close()

	sports := []models.Sport{}
	for rows.Next() {
		var s models.Sport
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan sport: %w", err)
		}
		sports = append(sports, s)
	}
	return sports, rows.Err()
}

// DeleteSport deletes a sport by ID
func (r *Repository) DeleteSport(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sport: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUnknownSport
	}
	return nil
}

func scanSport(row pgx.Row) (*models.Sport, error) {
	var s models.Sport
	if err := row.Scan(&s.ID, &s.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUnknownSport
		}
		return nil, fmt.Errorf("failed to get sport: %w", err)
	}
	return &s, nil
}
