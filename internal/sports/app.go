package sports

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mismarcadores/scoreboard/internal/apperrors"
	"github.com/mismarcadores/scoreboard/internal/models"
	"github.com/rs/zerolog/log"
)

// SportsRepository defines what the app layer needs from the repository
type SportsRepository interface {
	CreateSport(ctx context.Context, sport *models.Sport) error
	GetSport(ctx context.Context, id uuid.UUID) (*models.Sport, error)
	GetSportByName(ctx context.Context, name string) (*models.Sport, error)
	ListSports(ctx context.Context) ([]models.Sport, error)
	DeleteSport(ctx context.Context, id uuid.UUID) error
}

// App handles sport business logic
type App struct {
	repo SportsRepository
}

// NewApp creates a new sports App
func NewApp(repo SportsRepository) *App {
	return &App{repo: repo}
}

// CreateSport creates a sport with a fresh id. Names are unique and non-empty.
func (a *App) CreateSport(ctx context.Context, name string) (*models.Sport, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("sport name is required")
	}

	sport := &models.Sport{
		ID:   uuid.New(),
		Name: name,
	}
	if err := a.repo.CreateSport(ctx, sport); err != nil {
		return nil, err
	}

	log.Info().Str("sport", sport.Name).Str("sport_id", sport.ID.String()).Msg("created sport")
	return sport, nil
}

// GetSport retrieves a sport by ID
func (a *App) GetSport(ctx context.Context, id uuid.UUID) (*models.Sport, error) {
	return a.repo.GetSport(ctx, id)
}

// GetSportByName retrieves a sport by its unique name
func (a *App) GetSportByName(ctx context.Context, name string) (*models.Sport, error) {
	return a.repo.GetSportByName(ctx, name)
}

// ListSports retrieves all sports
func (a *App) ListSports(ctx context.Context) ([]models.Sport, error) {
	return a.repo.ListSports(ctx)
}

// DeleteSport deletes a sport by ID
func (a *App) DeleteSport(ctx context.Context, id uuid.UUID) error {
	if err := a.repo.DeleteSport(ctx, id); err != nil {
		return err
	}
	log.Info().Str("sport_id", id.String()).Msg("deleted sport")
	return nil
}
