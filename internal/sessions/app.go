package sessions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mismarcadores/scoreboard/internal/apperrors"
	"github.com/mismarcadores/scoreboard/internal/models"
	"github.com/rs/zerolog/log"
)

// SessionsRepository defines what the app layer needs from the repository
type SessionsRepository interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByToken(ctx context.Context, token uuid.UUID) (*models.Session, error)
	DeleteSession(ctx context.Context, token uuid.UUID) error
	DeleteSessionsForUser(ctx context.Context, username string) error
}

// UsersApp defines what the sessions app needs from the users app
type UsersApp interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CheckPassword(user *models.User, password string) bool
}

// App authenticates users and resolves session tokens
type App struct {
	repo  SessionsRepository
	users UsersApp
	clock clockwork.Clock
}

// NewApp creates a new sessions App
func NewApp(repo SessionsRepository, users UsersApp, clock clockwork.Clock) *App {
	return &App{repo: repo, users: users, clock: clock}
}

// Login verifies credentials and issues a fresh session token. Any previous
// session of the user is discarded.
func (a *App) Login(ctx context.Context, username, password string) (*models.Session, error) {
	user, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownUser) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !a.users.CheckPassword(user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := a.repo.DeleteSessionsForUser(ctx, user.Username); err != nil {
		return nil, err
	}

	session := &models.Session{
		Token:     uuid.New(),
		Username:  user.Username,
		CreatedAt: a.clock.Now(),
	}
	if err := a.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	log.Info().Str("username", user.Username).Msg("user logged in")
	return session, nil
}

// Logout destroys the session behind token.
func (a *App) Logout(ctx context.Context, token uuid.UUID) error {
	if err := a.repo.DeleteSession(ctx, token); err != nil {
		return err
	}
	log.Info().Str("token", token.String()).Msg("session destroyed")
	return nil
}

// ResolveUser returns the user owning the session behind token, or
// ErrInvalidSession. It has no side effects; every mutating operation calls
// this before touching the store.
func (a *App) ResolveUser(ctx context.Context, token uuid.UUID) (*models.User, error) {
	session, err := a.repo.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return a.users.GetUserByUsername(ctx, session.Username)
}
