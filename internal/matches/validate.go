package matches

import (
	"context"
	"strings"
	"time"

	"github.com/mismarcadores/scoreboard/internal/apperrors"
	"github.com/mismarcadores/scoreboard/internal/models"
)

// CandidateMatch is an unvalidated match submission. Sport and teams are
// referenced by name; the pipeline resolves them against the store.
type CandidateMatch struct {
	SportName   string    `json:"sport_name"`
	LocalTeam   string    `json:"local_team"`
	VisitorTeam string    `json:"visitor_team"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// resolveCandidate runs the validation pipeline, short-circuiting on the
// first failure:
//  1. sport name present and existing
//  2. both team names present and existing under that sport
//  3. date-time present
//
// Local and visitor may be the same team, and the date may lie in the past;
// neither is rejected. Returns a match without an ID.
func (a *App) resolveCandidate(ctx context.Context, candidate CandidateMatch) (*models.Match, error) {
	sportName := strings.TrimSpace(candidate.SportName)
	if sportName == "" {
		return nil, apperrors.ErrInvalidMatchData
	}
	sport, err := a.sports.GetSportByName(ctx, sportName)
	if err != nil {
		return nil, err
	}

	local, err := a.resolveTeam(ctx, sport, candidate.LocalTeam)
	if err != nil {
		return nil, err
	}
	visitor, err := a.resolveTeam(ctx, sport, candidate.VisitorTeam)
	if err != nil {
		return nil, err
	}

	if candidate.ScheduledAt.IsZero() {
		return nil, apperrors.ErrInvalidMatchData
	}

	return &models.Match{
		SportID:       sport.ID,
		LocalTeamID:   local.ID,
		VisitorTeamID: visitor.ID,
		ScheduledAt:   candidate.ScheduledAt,
	}, nil
}

func (a *App) resolveTeam(ctx context.Context, sport *models.Sport, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrInvalidMatchData
	}
	return a.teams.GetTeamBySportAndName(ctx, sport.ID, name)
}
