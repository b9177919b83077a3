package matches

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mismarcadores/scoreboard/internal/apperrors"
	"github.com/mismarcadores/scoreboard/internal/events"
	"github.com/mismarcadores/scoreboard/internal/models"
	"github.com/rs/zerolog/log"
)

// MatchesRepository defines what the app layer needs from the repository
type MatchesRepository interface {
	CreateMatch(ctx context.Context, match *models.Match) error
	UpdateMatch(ctx context.Context, match *models.Match) error
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
	ListMatchesBySport(ctx context.Context, sportID uuid.UUID) ([]models.Match, error)
	ListMatchesByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Match, error)
	DeleteMatch(ctx context.Context, id uuid.UUID) error
	DeleteAllMatches(ctx context.Context) error
	AddComment(ctx context.Context, comment *models.Comment) error
}

// SportsApp defines what the matches app needs from the sports app
type SportsApp interface {
	GetSportByName(ctx context.Context, name string) (*models.Sport, error)
}

// TeamsApp defines what the matches app needs from the teams app
type TeamsApp interface {
	GetTeamBySportAndName(ctx context.Context, sportID uuid.UUID, name string) (*models.Team, error)
}

// App is the match scheduling service. It orchestrates validation, conflict
// detection and store mutation for every write on matches.
type App struct {
	repo   MatchesRepository
	sports SportsApp
	teams  TeamsApp
	clock  clockwork.Clock
	events events.Publisher
}

// NewApp creates a new matches App. publisher may be nil to disable event
// emission.
func NewApp(repo MatchesRepository, sports SportsApp, teams TeamsApp, clock clockwork.Clock, publisher events.Publisher) *App {
	return &App{
		repo:   repo,
		sports: sports,
		teams:  teams,
		clock:  clock,
		events: publisher,
	}
}

// CreateMatch validates the candidate, checks the slot and persists a new
// match with a fresh id.
func (a *App) CreateMatch(ctx context.Context, candidate CandidateMatch) (*models.Match, error) {
	match, err := a.resolveCandidate(ctx, candidate)
	if err != nil {
		return nil, err
	}

	match.ID = uuid.New()
	if err := a.repo.CreateMatch(ctx, match); err != nil {
		return nil, err
	}

	log.Info().
		Str("match_id", match.ID.String()).
		Time("scheduled_at", match.ScheduledAt).
		Msg("created match")
	a.publish(events.SubjectMatchCreated, matchPayload(match))
	return match, nil
}

// UpdateMatch re-validates the candidate and rewrites the match in place.
// The conflict check excludes the match itself.
func (a *App) UpdateMatch(ctx context.Context, id uuid.UUID, candidate CandidateMatch) (*models.Match, error) {
	if _, err := a.repo.GetMatch(ctx, id); err != nil {
		return nil, err
	}

	match, err := a.resolveCandidate(ctx, candidate)
	if err != nil {
		return nil, err
	}

	match.ID = id
	if err := a.repo.UpdateMatch(ctx, match); err != nil {
		return nil, err
	}

	log.Info().Str("match_id", id.String()).Msg("updated match")
	a.publish(events.SubjectMatchUpdated, matchPayload(match))
	return match, nil
}

// DeleteMatch removes a match and its comment thread
func (a *App) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	match, err := a.repo.GetMatch(ctx, id)
	if err != nil {
		return err
	}
	if err := a.repo.DeleteMatch(ctx, id); err != nil {
		return err
	}

	log.Info().Str("match_id", id.String()).Msg("deleted match")
	a.publish(events.SubjectMatchDeleted, matchPayload(match))
	return nil
}

// DeleteAllMatches unconditionally wipes every match. Administrative
// maintenance only; callers gate it behind the admin flag.
func (a *App) DeleteAllMatches(ctx context.Context) error {
	if err := a.repo.DeleteAllMatches(ctx); err != nil {
		return err
	}
	log.Warn().Msg("deleted all matches")
	return nil
}

// AddComment appends a comment to an existing match thread, stamped with the
// current time. Appends are inserts, so concurrent authors never clobber
// each other.
func (a *App) AddComment(ctx context.Context, matchID uuid.UUID, authorUsername, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.Validation("comment body is required")
	}
	if _, err := a.repo.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:             uuid.New(),
		MatchID:        matchID,
		AuthorUsername: authorUsername,
		Body:           body,
		CreatedAt:      a.clock.Now(),
	}
	if err := a.repo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	log.Info().
		Str("match_id", matchID.String()).
		Str("author", authorUsername).
		Msg("added comment")
	a.publish(events.SubjectCommentAdded, events.CommentAddedPayload{
		MatchID:        matchID.String(),
		CommentID:      comment.ID.String(),
		AuthorUsername: authorUsername,
		CreatedAt:      comment.CreatedAt,
	})
	return comment, nil
}

// GetMatch retrieves a match by ID, comments included
func (a *App) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return a.repo.GetMatch(ctx, id)
}

// ListMatches retrieves all matches
func (a *App) ListMatches(ctx context.Context) ([]models.Match, error) {
	return a.repo.ListMatches(ctx)
}

// ListMatchesBySport retrieves matches by sport name. An unknown sport yields
// an empty list, not an error.
func (a *App) ListMatchesBySport(ctx context.Context, sportName string) ([]models.Match, error) {
	sport, err := a.sports.GetSportByName(ctx, sportName)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownSport) {
			return []models.Match{}, nil
		}
		return nil, err
	}
	return a.repo.ListMatchesBySport(ctx, sport.ID)
}

// ListMatchesByTeam retrieves matches where the team plays in either role
func (a *App) ListMatchesByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Match, error) {
	return a.repo.ListMatchesByTeam(ctx, teamID)
}

func (a *App) publish(subject string, payload any) {
	if a.events == nil {
		return
	}
	if err := a.events.Publish(subject, payload); err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}

func matchPayload(m *models.Match) events.MatchPayload {
	return events.MatchPayload{
		MatchID:       m.ID.String(),
		SportID:       m.SportID.String(),
		LocalTeamID:   m.LocalTeamID.String(),
		VisitorTeamID: m.VisitorTeamID.String(),
		ScheduledAt:   m.ScheduledAt,
	}
}
