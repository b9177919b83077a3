// Package httpapi exposes the scoreboard services as a JSON REST API. It
// owns header parsing and status-code mapping only; every business rule
// lives in the apps behind the service interfaces.
package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mismarcadores/scoreboard/internal/matches"
	"github.com/mismarcadores/scoreboard/internal/models"
	"github.com/mismarcadores/scoreboard/internal/teams"
	"github.com/mismarcadores/scoreboard/internal/users"
	"github.com/rs/cors"
)

// MatchesService defines what the handlers need from the matches app
type MatchesService interface {
	CreateMatch(ctx context.Context, candidate matches.CandidateMatch) (*models.Match, error)
	UpdateMatch(ctx context.Context, id uuid.UUID, candidate matches.CandidateMatch) (*models.Match, error)
	DeleteMatch(ctx context.Context, id uuid.UUID) error
	DeleteAllMatches(ctx context.Context) error
	AddComment(ctx context.Context, matchID uuid.UUID, authorUsername, body string) (*models.Comment, error)
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
	ListMatchesBySport(ctx context.Context, sportName string) ([]models.Match, error)
	ListMatchesByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Match, error)
}

// SessionsService defines what the handlers need from the sessions app
type SessionsService interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Logout(ctx context.Context, token uuid.UUID) error
	ResolveUser(ctx context.Context, token uuid.UUID) (*models.User, error)
}

// FavoritesService defines what the handlers need from the favorites app
type FavoritesService interface {
	Follow(ctx context.Context, teamID uuid.UUID, username string) error
	Unfollow(ctx context.Context, teamID uuid.UUID, username string) error
	ListByUser(ctx context.Context, username string) ([]models.Favorite, error)
}

// TeamsService defines what the handlers need from the teams app
type TeamsService interface {
	CreateTeam(ctx context.Context, req teams.CreateTeamRequest) (*models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context, opts teams.ListFilter) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, req teams.UpdateTeamRequest) (*models.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

// SportsService defines what the handlers need from the sports app
type SportsService interface {
	CreateSport(ctx context.Context, name string) (*models.Sport, error)
	GetSportByName(ctx context.Context, name string) (*models.Sport, error)
	ListSports(ctx context.Context) ([]models.Sport, error)
	DeleteSport(ctx context.Context, id uuid.UUID) error
}

// UsersService defines what the handlers need from the users app
type UsersService interface {
	CreateUser(ctx context.Context, req users.CreateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Server wires the domain services to HTTP routes
type Server struct {
	matches   MatchesService
	sessions  SessionsService
	favorites FavoritesService
	teams     TeamsService
	sports    SportsService
	users     UsersService
}

// NewServer creates an HTTP adapter over the domain services
func NewServer(
	matchesSvc MatchesService,
	sessionsSvc SessionsService,
	favoritesSvc FavoritesService,
	teamsSvc TeamsService,
	sportsSvc SportsService,
	usersSvc UsersService,
) *Server {
	return &Server{
		matches:   matchesSvc,
		sessions:  sessionsSvc,
		favorites: favoritesSvc,
		teams:     teamsSvc,
		sports:    sportsSvc,
		users:     usersSvc,
	}
}

// Handler returns the routed handler, CORS-wrapped.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/sessions", s.handleLogin)
	mux.HandleFunc("DELETE /api/sessions", s.handleLogout)

	mux.HandleFunc("POST /api/users", s.requireAdmin(s.handleUserCreate))
	mux.HandleFunc("GET /api/users", s.requireAdmin(s.handleUserList))

	mux.HandleFunc("POST /api/sports", s.requireAdmin(s.handleSportCreate))
	mux.HandleFunc("GET /api/sports", s.handleSportList)
	mux.HandleFunc("DELETE /api/sports/{id}", s.requireAdmin(s.handleSportDelete))

	mux.HandleFunc("POST /api/teams", s.requireSession(s.handleTeamCreate))
	mux.HandleFunc("GET /api/teams", s.handleTeamList)
	mux.HandleFunc("GET /api/teams/{id}", s.handleTeamGet)
	mux.HandleFunc("PUT /api/teams/{id}", s.requireSession(s.handleTeamUpdate))
	mux.HandleFunc("DELETE /api/teams/{id}", s.requireSession(s.handleTeamDelete))

	mux.HandleFunc("POST /api/matches", s.requireSession(s.handleMatchCreate))
	mux.HandleFunc("GET /api/matches", s.handleMatchList)
	mux.HandleFunc("GET /api/matches/{id}", s.handleMatchGet)
	mux.HandleFunc("PUT /api/matches/{id}", s.requireSession(s.handleMatchUpdate))
	mux.HandleFunc("DELETE /api/matches/{id}", s.requireSession(s.handleMatchDelete))
	mux.HandleFunc("DELETE /api/matches", s.requireAdmin(s.handleMatchDeleteAll))
	mux.HandleFunc("POST /api/matches/{id}/comments", s.requireSession(s.handleCommentAdd))
	mux.HandleFunc("GET /api/matches/sport/{name}", s.handleMatchListBySport)
	mux.HandleFunc("GET /api/matches/team/{id}", s.handleMatchListByTeam)

	mux.HandleFunc("POST /api/teams/{id}/followers", s.requireSession(s.handleFollow))
	mux.HandleFunc("DELETE /api/teams/{id}/followers", s.requireSession(s.handleUnfollow))
	mux.HandleFunc("GET /api/favorites", s.requireSession(s.handleFavoriteList))

	return cors.AllowAll().Handler(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
