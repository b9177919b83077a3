package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite records that a user follows a team. The (TeamID, Username) pair
// is unique.
type Favorite struct {
	TeamID    uuid.UUID `json:"team_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
