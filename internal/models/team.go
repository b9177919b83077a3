package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a team registered under a sport.
// Photo holds a base64-encoded image; it may be empty.
type Team struct {
	ID        uuid.UUID `json:"id"`
	SportID   uuid.UUID `json:"sport_id"`
	Name      string    `json:"name"`
	Photo     string    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
