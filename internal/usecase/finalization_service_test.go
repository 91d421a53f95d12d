package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/competition"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/livefixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/player"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/team"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
)

type finalizeEnv struct {
	fixtures     *stubFixtureRepo
	lives        *stubLiveFixtureRepo
	competitions *stubCompetitionRepo
	players      *stubPlayerRepo
	teams        *stubTeamRepo
	auditLog     *stubAuditRecorder
	notifier     *stubNotifier
	svc          *FinalizationService
}

// newFinalizeEnv seeds a league, two teams with squads and one live 2-0
// fixture ready to be ended.
func newFinalizeEnv(t *testing.T) *finalizeEnv {
	t.Helper()

	env := &finalizeEnv{
		fixtures:     newStubFixtureRepo(),
		lives:        newStubLiveFixtureRepo(),
		competitions: newStubCompetitionRepo(),
		players:      newStubPlayerRepo(),
		teams:        newStubTeamRepo(),
		auditLog:     &stubAuditRecorder{},
		notifier:     &stubNotifier{},
	}
	env.svc = NewFinalizationService(
		env.fixtures, env.lives, env.competitions, env.players, env.teams,
		env.auditLog, env.notifier, nil, logging.NewNop(),
	)

	ctx := context.Background()

	if err := env.competitions.Create(ctx, competition.Competition{
		ID:     "comp-1",
		Name:   "Premier Division",
		Sport:  fixture.SportFootball,
		Season: "2025/2026",
		Type:   competition.TypeLeague,
	}); err != nil {
		t.Fatalf("seed competition: %v", err)
	}

	for _, tm := range []team.Team{
		{ID: "team-a", Name: "Alpha FC"},
		{ID: "team-b", Name: "Bravo United"},
	} {
		if err := env.teams.Create(ctx, tm); err != nil {
			t.Fatalf("seed team: %v", err)
		}
	}

	for _, p := range []player.Player{
		{ID: "p-striker", TeamID: "team-a", Name: "Striker", Position: player.PositionForward},
		{ID: "p-keeper", TeamID: "team-a", Name: "Keeper", Position: player.PositionGoalkeeper},
		{ID: "p-quiet", TeamID: "team-a", Name: "Quiet", Position: player.PositionMidfielder},
		{ID: "p-bench", TeamID: "team-a", Name: "Bench", Position: player.PositionMidfielder},
		{ID: "p-opp1", TeamID: "team-b", Name: "Opp One", Position: player.PositionDefender},
		{ID: "p-opp2", TeamID: "team-b", Name: "Opp Two", Position: player.PositionForward},
	} {
		if err := env.players.Create(ctx, p); err != nil {
			t.Fatalf("seed player: %v", err)
		}
	}

	fx := fixture.Fixture{
		ID:            "fix-1",
		CompetitionID: "comp-1",
		Season:        "2025/2026",
		Sport:         fixture.SportFootball,
		HomeTeamID:    "team-a",
		AwayTeamID:    "team-b",
		Status:        fixture.StatusLive,
	}
	if err := env.fixtures.Create(ctx, fx); err != nil {
		t.Fatalf("seed fixture: %v", err)
	}

	live := livefixture.FromFixture(fx, time.Date(2026, 3, 14, 16, 0, 0, 0, time.UTC))
	live.Lineups = fixture.Lineups{
		Home: fixture.Lineup{
			TeamID:      "team-a",
			StartingXI:  []string{"p-striker", "p-keeper", "p-quiet"},
			Substitutes: []string{"p-bench"},
		},
		Away: fixture.Lineup{
			TeamID:     "team-b",
			StartingXI: []string{"p-opp1", "p-opp2"},
		},
	}
	live.Result = fixture.Result{HomeScore: 2, AwayScore: 0}
	live.Timeline = []fixture.TimelineEvent{
		{ID: 1, Type: fixture.EventGoal, Minute: 12, TeamID: "team-a", PlayerID: "p-striker", RelatedPlayerID: "p-quiet"},
		{ID: 2, Type: fixture.EventYellowCard, Minute: 40, TeamID: "team-b", PlayerID: "p-opp1"},
		{ID: 3, Type: fixture.EventGoal, Minute: 77, TeamID: "team-a", PlayerID: "p-striker"},
	}
	live.FanVotes = []livefixture.FanVote{
		{PlayerID: "p-striker", Votes: 5},
		{PlayerID: "p-opp1", Votes: 2},
	}
	live.NextEventID = 4
	if err := env.lives.Create(ctx, live); err != nil {
		t.Fatalf("seed live fixture: %v", err)
	}

	return env
}

func standingFor(t *testing.T, rows []competition.Standing, teamID string) competition.Standing {
	t.Helper()
	for _, row := range rows {
		if row.TeamID == teamID {
			return row
		}
	}
	t.Fatalf("no standing row for %s", teamID)
	return competition.Standing{}
}

func TestFinalizationService_Finalize_EndToEnd(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)
	ctx := context.Background()

	fx, err := env.svc.Finalize(ctx, "fix-1")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if fx.Status != fixture.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", fx.Status)
	}
	if fx.Finalization != fixture.FinalizationDone {
		t.Fatalf("expected FINALIZED, got %q", fx.Finalization)
	}
	if fx.Result == nil || fx.Result.HomeScore != 2 || fx.Result.AwayScore != 0 {
		t.Fatalf("result not materialized: %+v", fx.Result)
	}
	if fx.Result.WinnerTeamID != "team-a" {
		t.Fatalf("expected team-a as winner, got %q", fx.Result.WinnerTeamID)
	}
	if fx.FinalizedAt == nil {
		t.Fatal("expected FinalizedAt to be set")
	}
	if fx.PlayerOfTheMatchID != "p-striker" {
		t.Fatalf("expected fan vote leader as player of the match, got %q", fx.PlayerOfTheMatchID)
	}
	if len(fx.Timeline) != 3 {
		t.Fatalf("expected 3 timeline events, got %d", len(fx.Timeline))
	}

	comp := env.competitions.get("comp-1")
	home := standingFor(t, comp.Standings, "team-a")
	away := standingFor(t, comp.Standings, "team-b")
	if home.Played != 1 || home.Won != 1 || home.Points != 3 || home.GoalsFor != 2 || home.GoalDifference != 2 {
		t.Fatalf("unexpected home standing: %+v", home)
	}
	if home.Position != 1 {
		t.Fatalf("winner should rank first, got position %d", home.Position)
	}
	if away.Played != 1 || away.Lost != 1 || away.Points != 0 || away.GoalsAgainst != 2 {
		t.Fatalf("unexpected away standing: %+v", away)
	}
	if !comp.HasFolded("fix-1") {
		t.Fatal("fixture should be recorded in the competition fold ledger")
	}
	if comp.Aggregates.CompletedFixtures != 1 || comp.Aggregates.TotalGoals != 2 {
		t.Fatalf("unexpected aggregates: %+v", comp.Aggregates)
	}
	if len(comp.Aggregates.TopScorers) == 0 || comp.Aggregates.TopScorers[0].PlayerID != "p-striker" {
		t.Fatalf("expected p-striker leading scorers, got %+v", comp.Aggregates.TopScorers)
	}

	striker := env.players.get("p-striker")
	if striker.Career.Goals != 2 || striker.Career.Appearances != 1 {
		t.Fatalf("unexpected striker career: %+v", striker.Career)
	}
	keeper := env.players.get("p-keeper")
	if keeper.Career.CleanSheets != 1 {
		t.Fatalf("keeper should earn a clean sheet: %+v", keeper.Career)
	}
	quiet := env.players.get("p-quiet")
	if quiet.Career.Assists != 1 {
		t.Fatalf("expected 1 assist for p-quiet: %+v", quiet.Career)
	}

	teamA := env.teams.get("team-a")
	if teamA.Stats.MatchesPlayed != 1 || teamA.Stats.Wins != 1 || teamA.Stats.GoalsFor != 2 || teamA.Stats.CleanSheets != 1 {
		t.Fatalf("unexpected team-a stats: %+v", teamA.Stats)
	}
	teamB := env.teams.get("team-b")
	if teamB.Stats.Losses != 1 || teamB.Stats.GoalsAgainst != 2 {
		t.Fatalf("unexpected team-b stats: %+v", teamB.Stats)
	}

	if env.lives.has("fix-1") {
		t.Fatal("live twin should be archived after finalization")
	}
	if env.auditLog.count() != 1 {
		t.Fatalf("expected 1 audit entry, got %d", env.auditLog.count())
	}
	if env.notifier.count() != 1 {
		t.Fatalf("expected 1 notification, got %d", env.notifier.count())
	}
}

func TestFinalizationService_Finalize_SecondCallIsNoOp(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)
	ctx := context.Background()

	if _, err := env.svc.Finalize(ctx, "fix-1"); err != nil {
		t.Fatalf("first finalize: %v", err)
	}
	fx, err := env.svc.Finalize(ctx, "fix-1")
	if err != nil {
		t.Fatalf("second finalize: %v", err)
	}
	if fx.Finalization != fixture.FinalizationDone {
		t.Fatalf("expected FINALIZED, got %q", fx.Finalization)
	}

	comp := env.competitions.get("comp-1")
	if home := standingFor(t, comp.Standings, "team-a"); home.Played != 1 || home.Points != 3 {
		t.Fatalf("standings double-counted: %+v", home)
	}
	if striker := env.players.get("p-striker"); striker.Career.Goals != 2 {
		t.Fatalf("player stats double-counted: %+v", striker.Career)
	}
	if teamA := env.teams.get("team-a"); teamA.Stats.MatchesPlayed != 1 {
		t.Fatalf("team stats double-counted: %+v", teamA.Stats)
	}
	if env.auditLog.count() != 1 {
		t.Fatalf("no-op re-finalization should not audit again, got %d entries", env.auditLog.count())
	}
}

func TestFinalizationService_Finalize_RequiresLiveStatus(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)
	ctx := context.Background()

	fx := env.fixtures.get("fix-1")
	fx.Status = fixture.StatusScheduled
	if err := env.fixtures.Update(ctx, fx); err != nil {
		t.Fatalf("prepare fixture: %v", err)
	}

	if _, err := env.svc.Finalize(ctx, "fix-1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestFinalizationService_Finalize_RejectsConcurrentAttempt(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)
	ctx := context.Background()

	fx := env.fixtures.get("fix-1")
	fx.Finalization = fixture.FinalizationRunning
	if err := env.fixtures.Update(ctx, fx); err != nil {
		t.Fatalf("prepare fixture: %v", err)
	}

	if _, err := env.svc.Finalize(ctx, "fix-1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestFinalizationService_Finalize_MissingLiveTwinAborts(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)
	ctx := context.Background()

	if err := env.lives.Delete(ctx, "fix-1"); err != nil {
		t.Fatalf("remove live twin: %v", err)
	}

	if _, err := env.svc.Finalize(ctx, "fix-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	fx := env.fixtures.get("fix-1")
	if fx.Status != fixture.StatusLive || fx.Finalization != fixture.FinalizationNone {
		t.Fatalf("fixture should be untouched, got status=%s finalization=%q", fx.Status, fx.Finalization)
	}
}

func TestFinalizationService_Finalize_PartialFailureIsResumable(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)
	ctx := context.Background()

	env.teams.setUpdateErr(errors.New("storage down"))

	_, err := env.svc.Finalize(ctx, "fix-1")
	if !errors.Is(err, ErrPartialFinalization) {
		t.Fatalf("expected ErrPartialFinalization, got %v", err)
	}

	fx := env.fixtures.get("fix-1")
	if fx.Status != fixture.StatusCompleted {
		t.Fatalf("commit point should persist, got status %s", fx.Status)
	}
	if fx.Finalization != fixture.FinalizationFailed {
		t.Fatalf("expected FINALIZATION_FAILED, got %q", fx.Finalization)
	}

	comp := env.competitions.get("comp-1")
	if home := standingFor(t, comp.Standings, "team-a"); home.Played != 1 {
		t.Fatalf("standings should have folded before the failure: %+v", home)
	}

	env.teams.setUpdateErr(nil)

	fx, err = env.svc.Finalize(ctx, "fix-1")
	if err != nil {
		t.Fatalf("resume finalize: %v", err)
	}
	if fx.Finalization != fixture.FinalizationDone {
		t.Fatalf("expected FINALIZED after resume, got %q", fx.Finalization)
	}

	comp = env.competitions.get("comp-1")
	if home := standingFor(t, comp.Standings, "team-a"); home.Played != 1 || home.Points != 3 {
		t.Fatalf("resume double-counted standings: %+v", home)
	}
	if striker := env.players.get("p-striker"); striker.Career.Goals != 2 {
		t.Fatalf("resume double-counted player stats: %+v", striker.Career)
	}
	if teamA := env.teams.get("team-a"); teamA.Stats.MatchesPlayed != 1 {
		t.Fatalf("unexpected team stats after resume: %+v", teamA.Stats)
	}
	if env.lives.has("fix-1") {
		t.Fatal("live twin should be archived after resume")
	}
}

func TestFinalizationService_Finalize_GroupFixtureFoldsGroupTable(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)
	ctx := context.Background()

	comp := env.competitions.get("comp-1")
	comp.Type = competition.TypeHybrid
	comp.Groups = []competition.Group{
		{Name: "Group A", FixtureIDs: []string{"fix-1"}},
	}
	if err := env.competitions.Update(ctx, comp); err != nil {
		t.Fatalf("prepare competition: %v", err)
	}

	if _, err := env.svc.Finalize(ctx, "fix-1"); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	comp = env.competitions.get("comp-1")
	if len(comp.Standings) != 0 {
		t.Fatalf("league table should stay untouched for a group fixture: %+v", comp.Standings)
	}
	if len(comp.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(comp.Groups))
	}
	home := standingFor(t, comp.Groups[0].Standings, "team-a")
	if home.Played != 1 || home.Points != 3 {
		t.Fatalf("unexpected group standing: %+v", home)
	}
}

func TestFinalizationService_Finalize_SubstitutedScorerKeepsStats(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)
	ctx := context.Background()

	live, exists, err := env.lives.GetByFixtureID(ctx, "fix-1")
	if err != nil || !exists {
		t.Fatalf("get live fixture: exists=%v err=%v", exists, err)
	}
	live, err = live.WithSubstitution("team-a", "p-striker", "p-bench", 80)
	if err != nil {
		t.Fatalf("substitute striker: %v", err)
	}
	if err := env.lives.Update(ctx, live); err != nil {
		t.Fatalf("update live fixture: %v", err)
	}

	fx, err := env.svc.Finalize(ctx, "fix-1")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if got := fx.Participants()["p-striker"]; got != "team-a" {
		t.Fatalf("substituted scorer missing from participants: %v", fx.Participants())
	}
	striker := env.players.get("p-striker")
	if striker.Career.Appearances != 1 || striker.Career.Goals != 2 {
		t.Fatalf("substituted scorer lost stats: %+v", striker.Career)
	}
	bench := env.players.get("p-bench")
	if bench.Career.Appearances != 1 {
		t.Fatalf("incoming substitute should earn an appearance: %+v", bench.Career)
	}
}

func TestFinalizationService_Finalize_KnockoutFixtureLeavesTablesAlone(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)
	ctx := context.Background()

	comp := env.competitions.get("comp-1")
	comp.Type = competition.TypeHybrid
	comp.Groups = []competition.Group{
		{Name: "Group A", FixtureIDs: []string{"some-other-fixture"}},
	}
	comp.KnockoutRounds = []competition.KnockoutRound{
		{Name: "Final", FixtureIDs: []string{"fix-1"}},
	}
	if err := env.competitions.Update(ctx, comp); err != nil {
		t.Fatalf("prepare competition: %v", err)
	}

	if _, err := env.svc.Finalize(ctx, "fix-1"); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	comp = env.competitions.get("comp-1")
	if len(comp.Standings) != 0 {
		t.Fatalf("bracket result must not create league rows: %+v", comp.Standings)
	}
	if len(comp.Groups[0].Standings) != 0 {
		t.Fatalf("bracket result must not touch group tables: %+v", comp.Groups[0].Standings)
	}
	if !comp.HasFolded("fix-1") {
		t.Fatal("bracket fixture should still enter the fold ledger")
	}
	if comp.Aggregates.CompletedFixtures != 1 {
		t.Fatalf("aggregates should still count the final: %+v", comp.Aggregates)
	}
}

func TestFinalizationService_Finalize_PenaltyShootoutWinner(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)
	ctx := context.Background()

	live, exists, err := env.lives.GetByFixtureID(ctx, "fix-1")
	if err != nil || !exists {
		t.Fatalf("get live fixture: exists=%v err=%v", exists, err)
	}
	homePens, awayPens := 3, 4
	live.Result = fixture.Result{
		HomeScore:     1,
		AwayScore:     1,
		HomePenalties: &homePens,
		AwayPenalties: &awayPens,
	}
	live.Timeline = nil
	if err := env.lives.Update(ctx, live); err != nil {
		t.Fatalf("update live fixture: %v", err)
	}

	fx, err := env.svc.Finalize(ctx, "fix-1")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if fx.Result.WinnerTeamID != "team-b" {
		t.Fatalf("shootout winner should be team-b, got %q", fx.Result.WinnerTeamID)
	}
}

func TestFinalizationService_Resume_WithoutPriorAttemptIsRejected(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)

	if _, err := env.svc.Resume(context.Background(), "fix-1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
