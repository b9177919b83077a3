package models

import (
	"time"

	"github.com/google/uuid"
)

// Match represents a scheduled encounter between two teams of one sport.
// LocalTeamID and VisitorTeamID are not required to differ.
type Match struct {
	ID            uuid.UUID `json:"id"`
	SportID       uuid.UUID `json:"sport_id"`
	LocalTeamID   uuid.UUID `json:"local_team_id"`
	VisitorTeamID uuid.UUID `json:"visitor_team_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Comments      []Comment `json:"comments,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Comment is an append-only entry on a match's thread, ordered by insertion.
type Comment struct {
	ID             uuid.UUID `json:"id"`
	MatchID        uuid.UUID `json:"match_id"`
	AuthorUsername string    `json:"author_username"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
