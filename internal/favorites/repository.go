package favorites

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mismarcadores/scoreboard/internal/apperrors"
	"github.com/mismarcadores/scoreboard/internal/models"
	"github.com/mismarcadores/scoreboard/internal/storage"
)

// Repository implements favorite data access over Postgres. Uniqueness of
// the (team, user) pair rides on the table's primary key, so concurrent
// follows cannot produce duplicates.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new favorites repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// InsertFavorite records that username follows teamID
func (r *Repository) InsertFavorite(ctx context.Context, teamID uuid.UUID, username string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO favorites (team_id, username)
		VALUES ($1, $2)
	`, teamID, username)
	if err != nil {
		if storage.IsUniqueViolation(err, "") {
			return apperrors.ErrAlreadyFollowing
		}
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return nil
}

// DeleteFavorite removes the follow relation
func (r *Repository) DeleteFavorite(ctx context.Context, teamID uuid.UUID, username string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM favorites WHERE team_id = $1 AND username = $2
	`, teamID, username)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFollowing
	}
	return nil
}

// ListFavoritesByUser retrieves every team the user follows
func (r *Repository) ListFavoritesByUser(ctx context.Context, username string) ([]models.Favorite, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT team_id, username, created_at
		FROM favorites WHERE username = $1 ORDER BY created_at
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	list := []models.Favorite{}
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.TeamID, &f.Username, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
