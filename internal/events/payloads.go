// Package events publishes match lifecycle notifications to NATS so that
// downstream consumers (tickers, notification fan-out) can react without
// polling the store.
package events

import (
	"time"
)

// Subjects for match lifecycle events.
const (
	SubjectMatchCreated = "matches.created"
	SubjectMatchUpdated = "matches.updated"
	SubjectMatchDeleted = "matches.deleted"
	SubjectCommentAdded = "matches.comment_added"
)

// MatchPayload is the payload for created/updated/deleted match events.
type MatchPayload struct {
	MatchID       string    `json:"match_id"`
	SportID       string    `json:"sport_id"`
	LocalTeamID   string    `json:"local_team_id"`
	VisitorTeamID string    `json:"visitor_team_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}

// CommentAddedPayload is the payload for a CommentAdded event.
type CommentAddedPayload struct {
	MatchID        string    `json:"match_id"`
	CommentID      string    `json:"comment_id"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
}
