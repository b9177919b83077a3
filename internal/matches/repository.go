package matches

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mismarcadores/scoreboard/internal/apperrors"
	"github.com/mismarcadores/scoreboard/internal/models"
	"github.com/mismarcadores/scoreboard/internal/storage"
)

// Repository implements match data access over Postgres.
//
// Create and Update run the conflict check and the write inside one
// SERIALIZABLE transaction so two concurrent bookings of the same slot cannot
// both commit; the loser surfaces ErrScheduleConflict.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new matches repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateMatch inserts a match unless one of its teams is already booked at
// the same date-time.
func (r *Repository) CreateMatch(ctx context.Context, match *models.Match) error {
	err := storage.RunSerializable(ctx, r.pool, func(tx pgx.Tx) error {
		conflict, err := hasConflict(ctx, tx, match.ScheduledAt, match.LocalTeamID, match.VisitorTeamID, uuid.Nil)
		if err != nil {
			return err
		}
		if conflict {
			return apperrors.ErrScheduleConflict
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO matches (id, sport_id, local_team_id, visitor_team_id, scheduled_at)
			VALUES ($1, $2, $3, $4, $5)
		`, match.ID, match.SportID, match.LocalTeamID, match.VisitorTeamID, match.ScheduledAt)
		return err
	})
	return mapConflictErr(err, "failed to create match")
}

// UpdateMatch rewrites a match in place. The conflict check excludes the
// match itself so updating a match to its current slot never collides.
func (r *Repository) UpdateMatch(ctx context.Context, match *models.Match) error {
	err := storage.RunSerializable(ctx, r.pool, func(tx pgx.Tx) error {
		conflict, err := hasConflict(ctx, tx, match.ScheduledAt, match.LocalTeamID, match.VisitorTeamID, match.ID)
		if err != nil {
			return err
		}
		if conflict {
			return apperrors.ErrScheduleConflict
		}
		tag, err := tx.Exec(ctx, `
			UPDATE matches
			SET sport_id = $2, local_team_id = $3, visitor_team_id = $4, scheduled_at = $5
			WHERE id = $1
		`, match.ID, match.SportID, match.LocalTeamID, match.VisitorTeamID, match.ScheduledAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrUnknownMatch
		}
		return nil
	})
	return mapConflictErr(err, "failed to update match")
}

// GetMatch retrieves a match by ID together with its comment thread.
func (r *Repository) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, sport_id, local_team_id, visitor_team_id, scheduled_at, created_at
		FROM matches WHERE id = $1
	`, id)

	var m models.Match
	if err := row.Scan(&m.ID, &m.SportID, &m.LocalTeamID, &m.VisitorTeamID, &m.ScheduledAt, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUnknownMatch
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	comments, err := r.listComments(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Comments = comments
	return &m, nil
}

// ListMatches retrieves all matches ordered by date
func (r *Repository) ListMatches(ctx context.Context) ([]models.Match, error) {
	return r.queryMatches(ctx, `
		SELECT id, sport_id, local_team_id, visitor_team_id, scheduled_at, created_at
		FROM matches ORDER BY scheduled_at
	`)
}

// ListMatchesBySport retrieves all matches of one sport ordered by date
func (r *Repository) ListMatchesBySport(ctx context.Context, sportID uuid.UUID) ([]models.Match, error) {
	return r.queryMatches(ctx, `
		SELECT id, sport_id, local_team_id, visitor_team_id, scheduled_at, created_at
		FROM matches WHERE sport_id = $1 ORDER BY scheduled_at
	`, sportID)
}

// ListMatchesByTeam retrieves matches where the team plays in either role
func (r *Repository) ListMatchesByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Match, error) {
	return r.queryMatches(ctx, `
		SELECT id, sport_id, local_team_id, visitor_team_id, scheduled_at, created_at
		FROM matches WHERE local_team_id = $1 OR visitor_team_id = $1
		ORDER BY scheduled_at
	`, teamID)
}

// DeleteMatch removes a match; its comment thread goes with it (FK cascade).
func (r *Repository) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUnknownMatch
	}
	return nil
}

// DeleteAllMatches wipes every match and comment
func (r *Repository) DeleteAllMatches(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}

// AddComment appends a comment to a match thread
func (r *Repository) AddComment(ctx context.Context, comment *models.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, match_id, author_username, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, comment.ID, comment.MatchID, comment.AuthorUsername, comment.Body, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

// hasConflict reports whether any match other than exclude occupies the same
// date-time with either of the two teams, in either role. Date-time equality
// is exact; slots are discrete.
func hasConflict(ctx context.Context, tx pgx.Tx, at time.Time, local, visitor, exclude uuid.UUID) (bool, error) {
	var conflict bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE scheduled_at = $1
			  AND id <> $2
			  AND (local_team_id IN ($3, $4) OR visitor_team_id IN ($3, $4))
		)
	`, at, exclude, local, visitor).Scan(&conflict)
	if err != nil {
		return false, fmt.Errorf("failed to check schedule conflict: %w", err)
	}
	return conflict, nil
}

func (r *Repository) listComments(ctx context.Context, matchID uuid.UUID) ([]models.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, match_id, author_username, body, created_at
		FROM comments WHERE match_id = $1 ORDER BY created_at, id
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.MatchID, &c.AuthorUsername, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *Repository) queryMatches(ctx context.Context, sql string, args ...any) ([]models.Match, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	list := []models.Match{}
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.SportID, &m.LocalTeamID, &m.VisitorTeamID, &m.ScheduledAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// mapConflictErr folds serialization failures into the schedule-conflict
// error: the transaction that loses the race observes the same outcome as a
// plain double booking.
func mapConflictErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrScheduleConflict) || errors.Is(err, apperrors.ErrUnknownMatch) {
		return err
	}
	if storage.IsSerializationFailure(err) {
		return apperrors.ErrScheduleConflict
	}
	return fmt.Errorf("%s: %w", msg, err)
}
