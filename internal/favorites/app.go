package favorites

import (
	"context"

	"github.com/google/uuid"
	"github.com/mismarcadores/scoreboard/internal/models"
	"github.com/rs/zerolog/log"
)

// FavoritesRepository defines what the app layer needs from the repository
type FavoritesRepository interface {
	InsertFavorite(ctx context.Context, teamID uuid.UUID, username string) error
	DeleteFavorite(ctx context.Context, teamID uuid.UUID, username string) error
	ListFavoritesByUser(ctx context.Context, username string) ([]models.Favorite, error)
}

// TeamsApp defines what the favorites app needs from the teams app
type TeamsApp interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// App manages the user-follows-team relation
type App struct {
	repo  FavoritesRepository
	teams TeamsApp
}

// NewApp creates a new favorites App
func NewApp(repo FavoritesRepository, teams TeamsApp) *App {
	return &App{repo: repo, teams: teams}
}

// Follow records that username follows the team. The store's uniqueness
// constraint turns a concurrent duplicate into ErrAlreadyFollowing, so there
// is no check-then-insert window.
func (a *App) Follow(ctx context.Context, teamID uuid.UUID, username string) error {
	if _, err := a.teams.GetTeam(ctx, teamID); err != nil {
		return err
	}
	if err := a.repo.InsertFavorite(ctx, teamID, username); err != nil {
		return err
	}

	log.Info().Str("team_id", teamID.String()).Str("username", username).Msg("user followed team")
	return nil
}

// Unfollow removes the follow relation
func (a *App) Unfollow(ctx context.Context, teamID uuid.UUID, username string) error {
	if _, err := a.teams.GetTeam(ctx, teamID); err != nil {
		return err
	}
	if err := a.repo.DeleteFavorite(ctx, teamID, username); err != nil {
		return err
	}

	log.Info().Str("team_id", teamID.String()).Str("username", username).Msg("user unfollowed team")
	return nil
}

// ListByUser retrieves every favorite of the user
func (a *App) ListByUser(ctx context.Context, username string) ([]models.Favorite, error) {
	return a.repo.ListFavoritesByUser(ctx, username)
}
