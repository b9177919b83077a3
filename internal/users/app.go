package users

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/mismarcadores/scoreboard/internal/apperrors"
	"github.com/mismarcadores/scoreboard/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// UsersRepository defines what the app layer needs from the repository
type UsersRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// CreateUserRequest carries the data needed to register a user
type CreateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
}

// App handles user business logic
type App struct {
	repo UsersRepository
}

// NewApp creates a new users App
func NewApp(repo UsersRepository) *App {
	return &App{repo: repo}
}

// CreateUser registers a user. Name, last name, username and password must be
// non-empty, the email must be well-formed and the username unique. The
// password is stored as a bcrypt hash.
func (a *App) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if err := validateCreateUserRequest(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		Email:        strings.TrimSpace(req.Email),
		IsAdmin:      req.IsAdmin,
	}
	if err := a.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("username", user.Username).Bool("is_admin", user.IsAdmin).Msg("created user")
	return user, nil
}

// GetUser retrieves a user by ID
func (a *App) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return a.repo.GetUser(ctx, id)
}

// GetUserByUsername retrieves a user by their unique username
func (a *App) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return a.repo.GetUserByUsername(ctx, username)
}

// ListUsers retrieves all users
func (a *App) ListUsers(ctx context.Context) ([]models.User, error) {
	return a.repo.ListUsers(ctx)
}

// CheckPassword compares a candidate password against the stored hash.
func (a *App) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func validateCreateUserRequest(req CreateUserRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return apperrors.Validation("first name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return apperrors.Validation("last name is required")
	}
	if strings.TrimSpace(req.Username) == "" {
		return apperrors.Validation("username is required")
	}
	if req.Password == "" {
		return apperrors.Validation("password is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return apperrors.Validation("email is not a valid address")
	}
	return nil
}
