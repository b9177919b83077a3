package matches

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mismarcadores/scoreboard/internal/apperrors"
)

func TestResolveCandidatePipelineOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name      string
		candidate CandidateMatch
		want      error
	}{
		{
			name:      "missing sport name",
			candidate: candidate("", "Defensor", "Danubio", slot),
			want:      apperrors.ErrInvalidMatchData,
		},
		{
			name:      "blank sport name",
			candidate: candidate("   ", "Defensor", "Danubio", slot),
			want:      apperrors.ErrInvalidMatchData,
		},
		{
			// The sport is checked before the teams, so a bad sport wins
			// even when the teams are bad too.
			name:      "unknown sport before unknown teams",
			candidate: candidate("Curling", "Nadie", "Ninguno", slot),
			want:      apperrors.ErrUnknownSport,
		},
		{
			name:      "missing local team",
			candidate: candidate("Futbol", "", "Danubio", slot),
			want:      apperrors.ErrInvalidMatchData,
		},
		{
			name:      "missing visitor team",
			candidate: candidate("Futbol", "Defensor", "", slot),
			want:      apperrors.ErrInvalidMatchData,
		},
		{
			// Teams are resolved before the date is checked.
			name:      "unknown team before missing date",
			candidate: candidate("Futbol", "Nadie", "Danubio", time.Time{}),
			want:      apperrors.ErrUnknownTeam,
		},
		{
			name:      "missing date",
			candidate: candidate("Futbol", "Defensor", "Danubio", time.Time{}),
			want:      apperrors.ErrInvalidMatchData,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.app.CreateMatch(ctx, tc.candidate); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestResolveCandidateTrimsNames(t *testing.T) {
	f := newFixture(t)

	created, err := f.app.CreateMatch(context.Background(), candidate("  Futbol ", " Defensor ", " Danubio ", slot))
	if err != nil {
		t.Fatalf("create with padded names: %v", err)
	}
	if created.SportID == uuid.Nil {
		t.Fatal("expected resolved sport id")
	}
}

func TestPastDateAccepted(t *testing.T) {
	f := newFixture(t)

	past := f.clock.Now().Add(-48 * time.Hour)
	if _, err := f.app.CreateMatch(context.Background(), candidate("Futbol", "Defensor", "Danubio", past)); err != nil {
		t.Fatalf("create in the past: %v", err)
	}
}
