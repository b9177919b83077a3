package models

import (
	"time"

	"github.com/google/uuid"
)

// Session ties an opaque token to a logged-in user. Expiry policy lives
// outside the core; logout deletes the row.
type Session struct {
	Token     uuid.UUID `json:"token"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
