package models

import (
	"github.com/google/uuid"
)

// Sport represents a discipline that teams compete in
type Sport struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
