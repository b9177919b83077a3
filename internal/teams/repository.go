package teams

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

// Repository implements team data access over Postgres
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new teams repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateTeam inserts a new team
func (r *Repository) CreateTeam(ctx context.Context, team *models.Team) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO teams (id, sport_id, name, photo)
		VALUES ($1, $2, $3, $4)
	`, team.ID, team.SportID, team.Name, team.Photo)
	if err != nil {
		if storage.IsUniqueViolation(err, "") {
			return apperrors.ErrDuplicateName
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// GetTeam retrieves a team by ID
func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, sport_id, name, photo, created_at
		FROM teams WHERE id = $1
	`, id)
	return scanTeam(row)
}

// GetTeamBySportAndName retrieves a team by its name within one sport
func (r *Repository) GetTeamBySportAndName(ctx context.Context, sportID uuid.UUID, name string) (*models.Team, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, sport_id, name, photo, created_at
		FROM teams WHERE sport_id = $1 AND name = $2
	`, sportID, name)
	return scanTeam(row)
}

// ListTeams retrieves all teams ordered by name
func (r *Repository) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, sport_id, name, photo, created_at
		FROM teams ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return collectTeams(rows)
}

// ListTeamsBySport retrieves all teams for a specific sport
func (r *Repository) ListTeamsBySport(ctx context.Context, sportID uuid.UUID) ([]models.Team, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, sport_id, name, photo, created_at
		FROM teams WHERE sport_id = $1 ORDER BY name
	`, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams by sport: %w", err)
	}
	return collectTeams(rows)
}

// UpdateTeam updates name and photo of an existing team
func (r *Repository) UpdateTeam(ctx context.Context, team *models.Team) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE teams SET name = $2, photo = $3 WHERE id = $1
	`, team.ID, team.Name, team.Photo)
	if err != nil {
		if storage.IsUniqueViolation(err, "") {
			return apperrors.ErrDuplicateName
		}
		return fmt.Errorf("failed to update team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUnknownTeam
	}
	return nil
}

// DeleteTeam deletes a team by ID
func (r *Repository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUnknownTeam
	}
	return nil
}

func scanTeam(row pgx.Row) (*models.Team, error) {
	var t models.Team
	if err := row.Scan(&t.ID, &t.SportID, &t.Name, &t.Photo, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUnknownTeam
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &t, nil
}

func collectTeams(rows pgx.Rows) ([]models.Team, error) {
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.SportID, &t.Name, &t.Photo, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}
