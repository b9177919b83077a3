package matches

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mismarcadores/scoreboard/internal/apperrors"
	"github.com/mismarcadores/scoreboard/internal/models"
)

// fakeRepo mirrors the repository's conflict semantics in memory: an insert
// or rewrite fails when another match shares the exact date-time and at
// least one team, in either role.
type fakeRepo struct {
	matches  map[uuid.UUID]models.Match
	comments map[uuid.UUID][]models.Comment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		matches:  make(map[uuid.UUID]models.Match),
		comments: make(map[uuid.UUID][]models.Comment),
	}
}

func (r *fakeRepo) hasConflict(m *models.Match, exclude uuid.UUID) bool {
	for _, other := range r.matches {
		if other.ID == exclude || !other.ScheduledAt.Equal(m.ScheduledAt) {
			continue
		}
		for _, team := range []uuid.UUID{m.LocalTeamID, m.VisitorTeamID} {
			if other.LocalTeamID == team || other.VisitorTeamID == team {
				return true
			}
		}
	}
	return false
}

func (r *fakeRepo) CreateMatch(_ context.Context, m *models.Match) error {
	if r.hasConflict(m, uuid.Nil) {
		return apperrors.ErrScheduleConflict
	}
	r.matches[m.ID] = *m
	return nil
}

func (r *fakeRepo) UpdateMatch(_ context.Context, m *models.Match) error {
	if _, ok := r.matches[m.ID]; !ok {
		return apperrors.ErrUnknownMatch
	}
	if r.hasConflict(m, m.ID) {
		return apperrors.ErrScheduleConflict
	}
	r.matches[m.ID] = *m
	return nil
}

func (r *fakeRepo) GetMatch(_ context.Context, id uuid.UUID) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, apperrors.ErrUnknownMatch
	}
	m.Comments = append([]models.Comment(nil), r.comments[id]...)
	return &m, nil
}

func (r *fakeRepo) ListMatches(_ context.Context) ([]models.Match, error) {
	list := []models.Match{}
	for _, m := range r.matches {
		list = append(list, m)
	}
	return list, nil
}

func (r *fakeRepo) ListMatchesBySport(_ context.Context, sportID uuid.UUID) ([]models.Match, error) {
	list := []models.Match{}
	for _, m := range r.matches {
		if m.SportID == sportID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *fakeRepo) ListMatchesByTeam(_ context.Context, teamID uuid.UUID) ([]models.Match, error) {
	list := []models.Match{}
	for _, m := range r.matches {
		if m.LocalTeamID == teamID || m.VisitorTeamID == teamID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *fakeRepo) DeleteMatch(_ context.Context, id uuid.UUID) error {
	if _, ok := r.matches[id]; !ok {
		return apperrors.ErrUnknownMatch
	}
	delete(r.matches, id)
	delete(r.comments, id)
	return nil
}

func (r *fakeRepo) DeleteAllMatches(_ context.Context) error {
	r.matches = make(map[uuid.UUID]models.Match)
	r.comments = make(map[uuid.UUID][]models.Comment)
	return nil
}

func (r *fakeRepo) AddComment(_ context.Context, c *models.Comment) error {
	r.comments[c.MatchID] = append(r.comments[c.MatchID], *c)
	return nil
}

type fakeSports struct {
	byName map[string]*models.Sport
}

func (f *fakeSports) GetSportByName(_ context.Context, name string) (*models.Sport, error) {
	if s, ok := f.byName[name]; ok {
		return s, nil
	}
	return nil, apperrors.ErrUnknownSport
}

type fakeTeams struct {
	bySportAndName map[uuid.UUID]map[string]*models.Team
}

func (f *fakeTeams) GetTeamBySportAndName(_ context.Context, sportID uuid.UUID, name string) (*models.Team, error) {
	if t, ok := f.bySportAndName[sportID][name]; ok {
		return t, nil
	}
	return nil, apperrors.ErrUnknownTeam
}

type recordingPublisher struct {
	subjects []string
}

func (p *recordingPublisher) Publish(subject string, _ any) error {
	p.subjects = append(p.subjects, subject)
	return nil
}

type fixture struct {
	app   *App
	repo  *fakeRepo
	clock *clockwork.FakeClock
	pub   *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	futbol := &models.Sport{ID: uuid.New(), Name: "Futbol"}
	rugby := &models.Sport{ID: uuid.New(), Name: "Rugby"}

	sportsApp := &fakeSports{byName: map[string]*models.Sport{
		"Futbol": futbol,
		"Rugby":  rugby,
	}}
	teamsApp := &fakeTeams{bySportAndName: map[uuid.UUID]map[string]*models.Team{
		futbol.ID: {
			"Defensor": {ID: uuid.New(), SportID: futbol.ID, Name: "Defensor"},
			"Danubio":  {ID: uuid.New(), SportID: futbol.ID, Name: "Danubio"},
			"Miramar":  {ID: uuid.New(), SportID: futbol.ID, Name: "Miramar"},
		},
		rugby.ID: {
			"Los Teros": {ID: uuid.New(), SportID: rugby.ID, Name: "Los Teros"},
		},
	}}

	repo := newFakeRepo()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	pub := &recordingPublisher{}
	app := NewApp(repo, sportsApp, teamsApp, clock, pub)
	return &fixture{app: app, repo: repo, clock: clock, pub: pub}
}

func candidate(sport, local, visitor string, at time.Time) CandidateMatch {
	return CandidateMatch{
		SportName:   sport,
		LocalTeam:   local,
		VisitorTeam: visitor,
		ScheduledAt: at,
	}
}

var slot = time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)

func TestCreateMatchRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.app.CreateMatch(ctx, candidate("Futbol", "Defensor", "Danubio", slot))
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected an assigned id")
	}

	got, err := f.app.GetMatch(ctx, created.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if got.SportID != created.SportID ||
		got.LocalTeamID != created.LocalTeamID ||
		got.VisitorTeamID != created.VisitorTeamID ||
		!got.ScheduledAt.Equal(slot) {
		t.Fatalf("stored match differs from input: %+v vs %+v", got, created)
	}
}

func TestCreateMatchScheduleConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.app.CreateMatch(ctx, candidate("Futbol", "Defensor", "Danubio", slot)); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Defensor is already booked at slot, even in the other role.
	second := []CandidateMatch{
		candidate("Futbol", "Defensor", "Miramar", slot),
		candidate("Futbol", "Miramar", "Defensor", slot),
		candidate("Futbol", "Miramar", "Danubio", slot),
	}
	for _, c := range second {
		if _, err := f.app.CreateMatch(ctx, c); !errors.Is(err, apperrors.ErrScheduleConflict) {
			t.Fatalf("candidate %s vs %s: expected schedule conflict, got %v", c.LocalTeam, c.VisitorTeam, err)
		}
	}

	// A different slot is free.
	if _, err := f.app.CreateMatch(ctx, candidate("Futbol", "Defensor", "Miramar", slot.Add(time.Hour))); err != nil {
		t.Fatalf("create at free slot: %v", err)
	}
}

func TestCreateMatchSameTeamBothRoles(t *testing.T) {
	f := newFixture(t)

	// The pipeline does not reject local == visitor.
	if _, err := f.app.CreateMatch(context.Background(), candidate("Futbol", "Defensor", "Defensor", slot)); err != nil {
		t.Fatalf("create with same team in both roles: %v", err)
	}
}

func TestCreateMatchTeamOfOtherSport(t *testing.T) {
	f := newFixture(t)

	// Defensor plays Futbol, not Rugby.
	_, err := f.app.CreateMatch(context.Background(), candidate("Rugby", "Defensor", "Los Teros", slot))
	if !errors.Is(err, apperrors.ErrUnknownTeam) {
		t.Fatalf("expected unknown team, got %v", err)
	}
}

func TestUpdateMatchKeepsOwnSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.app.CreateMatch(ctx, candidate("Futbol", "Defensor", "Danubio", slot))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Re-submitting the same date and teams must not collide with itself.
	if _, err := f.app.UpdateMatch(ctx, created.ID, candidate("Futbol", "Defensor", "Danubio", slot)); err != nil {
		t.Fatalf("update to own slot: %v", err)
	}
}

func TestUpdateMatchConflictsWithOther(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.app.CreateMatch(ctx, candidate("Futbol", "Defensor", "Danubio", slot)); err != nil {
		t.Fatalf("create first: %v", err)
	}
	other, err := f.app.CreateMatch(ctx, candidate("Futbol", "Miramar", "Danubio", slot.Add(time.Hour)))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	_, err = f.app.UpdateMatch(ctx, other.ID, candidate("Futbol", "Miramar", "Danubio", slot))
	if !errors.Is(err, apperrors.ErrScheduleConflict) {
		t.Fatalf("expected schedule conflict, got %v", err)
	}
}

func TestUpdateUnknownMatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.UpdateMatch(context.Background(), uuid.New(), candidate("Futbol", "Defensor", "Danubio", slot))
	if !errors.Is(err, apperrors.ErrUnknownMatch) {
		t.Fatalf("expected unknown match, got %v", err)
	}
}

func TestDeleteMatchRemovesThread(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.app.CreateMatch(ctx, candidate("Futbol", "Defensor", "Danubio", slot))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.app.AddComment(ctx, created.ID, "ana", "vamos!"); err != nil {
		t.Fatalf("add comment: %v", err)
	}

	if err := f.app.DeleteMatch(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := f.app.GetMatch(ctx, created.ID); !errors.Is(err, apperrors.ErrUnknownMatch) {
		t.Fatalf("expected unknown match after delete, got %v", err)
	}
	if _, err := f.app.AddComment(ctx, created.ID, "ana", "hola?"); !errors.Is(err, apperrors.ErrUnknownMatch) {
		t.Fatalf("expected unknown match on comment after delete, got %v", err)
	}
	if err := f.app.DeleteMatch(ctx, created.ID); !errors.Is(err, apperrors.ErrUnknownMatch) {
		t.Fatalf("expected unknown match on second delete, got %v", err)
	}
}

func TestDeleteAllMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i, c := range []CandidateMatch{
		candidate("Futbol", "Defensor", "Danubio", slot),
		candidate("Futbol", "Miramar", "Danubio", slot.Add(time.Hour)),
	} {
		if _, err := f.app.CreateMatch(ctx, c); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	if err := f.app.DeleteAllMatches(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	list, err := f.app.ListMatches(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no matches, got %d", len(list))
	}
}

func TestAddCommentStampsClockAndAppends(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.app.CreateMatch(ctx, candidate("Futbol", "Defensor", "Danubio", slot))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first := f.clock.Now()
	if _, err := f.app.AddComment(ctx, created.ID, "ana", "primer tiempo"); err != nil {
		t.Fatalf("first comment: %v", err)
	}
	f.clock.Advance(5 * time.Minute)
	if _, err := f.app.AddComment(ctx, created.ID, "bruno", "golazo"); err != nil {
		t.Fatalf("second comment: %v", err)
	}

	got, err := f.app.GetMatch(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(got.Comments))
	}
	if got.Comments[0].AuthorUsername != "ana" || !got.Comments[0].CreatedAt.Equal(first) {
		t.Fatalf("first comment wrong: %+v", got.Comments[0])
	}
	if got.Comments[1].AuthorUsername != "bruno" || !got.Comments[1].CreatedAt.Equal(first.Add(5*time.Minute)) {
		t.Fatalf("second comment wrong: %+v", got.Comments[1])
	}
}

func TestAddCommentEmptyBody(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.app.CreateMatch(ctx, candidate("Futbol", "Defensor", "Danubio", slot))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.app.AddComment(ctx, created.ID, "ana", "   ")
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestListMatchesBySportUnknownIsEmpty(t *testing.T) {
	f := newFixture(t)

	list, err := f.app.ListMatchesBySport(context.Background(), "Curling")
	if err != nil {
		t.Fatalf("list by unknown sport: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestListMatchesByTeamEitherRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	asLocal, err := f.app.CreateMatch(ctx, candidate("Futbol", "Defensor", "Danubio", slot))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	asVisitor, err := f.app.CreateMatch(ctx, candidate("Futbol", "Miramar", "Defensor", slot.Add(time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := f.app.ListMatchesByTeam(ctx, asLocal.LocalTeamID)
	if err != nil {
		t.Fatalf("list by team: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(list))
	}
	_ = asVisitor
}

func TestMatchEventsPublished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.app.CreateMatch(ctx, candidate("Futbol", "Defensor", "Danubio", slot))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.app.AddComment(ctx, created.ID, "ana", "hola"); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if err := f.app.DeleteMatch(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{"matches.created", "matches.comment_added", "matches.deleted"}
	if len(f.pub.subjects) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), f.pub.subjects)
	}
	for i, subject := range want {
		if f.pub.subjects[i] != subject {
			t.Fatalf("event %d: expected %s, got %s", i, subject, f.pub.subjects[i])
		}
	}
}
