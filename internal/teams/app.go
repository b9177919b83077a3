package teams

import (
	"context"
	"encoding/base64"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/mismarcadores/scoreboard/internal/apperrors"
	"github.com/mismarcadores/scoreboard/internal/models"
	"github.com/rs/zerolog/log"
)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	CreateTeam(ctx context.Context, team *models.Team) error
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetTeamBySportAndName(ctx context.Context, sportID uuid.UUID, name string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListTeamsBySport(ctx context.Context, sportID uuid.UUID) ([]models.Team, error)
	UpdateTeam(ctx context.Context, team *models.Team) error
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

// SportsApp defines what the teams app needs from the sports app
type SportsApp interface {
	GetSportByName(ctx context.Context, name string) (*models.Sport, error)
}

// CreateTeamRequest carries the data needed to register a team
type CreateTeamRequest struct {
	SportName string `json:"sport_name"`
	Name      string `json:"name"`
	Photo     string `json:"photo,omitempty"`
}

// UpdateTeamRequest carries the fields that can change on a team
type UpdateTeamRequest struct {
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
}

// ListFilter narrows and orders team listings. Filter matches a name
// substring case-insensitively; Order is "asc" or "desc" by name.
type ListFilter struct {
	Filter string
	Order  string
}

// App handles team business logic
type App struct {
	repo   TeamsRepository
	sports SportsApp
}

// NewApp creates a new teams App
func NewApp(repo TeamsRepository, sports SportsApp) *App {
	return &App{repo: repo, sports: sports}
}

// CreateTeam registers a team under an existing sport. The name must be
// unique within that sport and the photo, when present, must be base64.
func (a *App) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	if err := validateTeamFields(req.Name, req.Photo); err != nil {
		return nil, err
	}

	sport, err := a.sports.GetSportByName(ctx, req.SportName)
	if err != nil {
		return nil, err
	}

	team := &models.Team{
		ID:      uuid.New(),
		SportID: sport.ID,
		Name:    strings.TrimSpace(req.Name),
		Photo:   req.Photo,
	}
	if err := a.repo.CreateTeam(ctx, team); err != nil {
		return nil, err
	}

	log.Info().Str("team", team.Name).Str("sport", sport.Name).Msg("created team")
	return team, nil
}

// GetTeam retrieves a team by ID
func (a *App) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return a.repo.GetTeam(ctx, id)
}

// GetTeamBySportAndName resolves a team by name within one sport
func (a *App) GetTeamBySportAndName(ctx context.Context, sportID uuid.UUID, name string) (*models.Team, error) {
	return a.repo.GetTeamBySportAndName(ctx, sportID, name)
}

// ListTeams retrieves teams, optionally filtered by name substring and
// ordered ascending or descending.
func (a *App) ListTeams(ctx context.Context, opts ListFilter) ([]models.Team, error) {
	order := strings.ToLower(strings.TrimSpace(opts.Order))
	if order != "" && order != "asc" && order != "desc" {
		return nil, apperrors.Validation("order must be asc or desc")
	}

	teams, err := a.repo.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	if f := strings.TrimSpace(opts.Filter); f != "" {
		filtered := teams[:0]
		for _, t := range teams {
			if strings.Contains(strings.ToLower(t.Name), strings.ToLower(f)) {
				filtered = append(filtered, t)
			}
		}
		teams = filtered
	}

	if order == "desc" {
		sort.Slice(teams, func(i, j int) bool { return teams[i].Name > teams[j].Name })
	}
	return teams, nil
}

// ListTeamsBySport retrieves all teams for a specific sport
func (a *App) ListTeamsBySport(ctx context.Context, sportID uuid.UUID) ([]models.Team, error) {
	return a.repo.ListTeamsBySport(ctx, sportID)
}

// UpdateTeam changes a team's name or photo
func (a *App) UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error) {
	if err := validateTeamFields(req.Name, req.Photo); err != nil {
		return nil, err
	}

	team, err := a.repo.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	team.Name = strings.TrimSpace(req.Name)
	team.Photo = req.Photo
	if err := a.repo.UpdateTeam(ctx, team); err != nil {
		return nil, err
	}

	log.Info().Str("team", team.Name).Str("team_id", team.ID.String()).Msg("updated team")
	return team, nil
}

// DeleteTeam deletes a team by ID
func (a *App) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if err := a.repo.DeleteTeam(ctx, id); err != nil {
		return err
	}
	log.Info().Str("team_id", id.String()).Msg("deleted team")
	return nil
}

func validateTeamFields(name, photo string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Validation("team name is required")
	}
	if photo != "" {
		if _, err := base64.StdEncoding.DecodeString(photo); err != nil {
			return apperrors.Validation("photo must be base64 encoded")
		}
	}
	return nil
}
