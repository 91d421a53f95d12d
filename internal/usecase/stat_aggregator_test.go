package usecase

import (
	"testing"
	"time"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/player"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/team"
)

func completedFixture() fixture.Fixture {
	finalized := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	return fixture.Fixture{
		ID:            "fix-1",
		CompetitionID: "comp-1",
		Season:        "2025/2026",
		Sport:         fixture.SportFootball,
		HomeTeamID:    "team-a",
		AwayTeamID:    "team-b",
		Status:        fixture.StatusCompleted,
		Result:        &fixture.Result{HomeScore: 2, AwayScore: 0, WinnerTeamID: "team-a"},
		Lineups: fixture.Lineups{
			Home: fixture.Lineup{
				TeamID:      "team-a",
				StartingXI:  []string{"p-striker", "p-keeper", "p-quiet"},
				Substitutes: []string{"p-bench"},
			},
			Away: fixture.Lineup{
				TeamID:     "team-b",
				StartingXI: []string{"p-opp1", "p-opp2"},
			},
		},
		Timeline: []fixture.TimelineEvent{
			{ID: 1, Type: fixture.EventGoal, Minute: 12, TeamID: "team-a", PlayerID: "p-striker", RelatedPlayerID: "p-quiet"},
			{ID: 2, Type: fixture.EventYellowCard, Minute: 40, TeamID: "team-b", PlayerID: "p-opp1"},
			{ID: 3, Type: fixture.EventGoal, Minute: 77, TeamID: "team-a", PlayerID: "p-striker"},
		},
		FinalizedAt: &finalized,
	}
}

func TestBuildMatchFacts(t *testing.T) {
	t.Parallel()

	facts := BuildMatchFacts(completedFixture())

	if facts.HomeGoals != 2 || facts.AwayGoals != 0 {
		t.Fatalf("unexpected score: %d-%d", facts.HomeGoals, facts.AwayGoals)
	}
	if len(facts.Participants) != 6 {
		t.Fatalf("expected 6 participants, got %d", len(facts.Participants))
	}
	if facts.Participants["p-bench"] != "team-a" {
		t.Fatalf("substitute should participate for team-a, got %q", facts.Participants["p-bench"])
	}
	if facts.Goals["p-striker"] != 2 {
		t.Fatalf("expected 2 goals for p-striker, got %d", facts.Goals["p-striker"])
	}
	if facts.Assists["p-quiet"] != 1 {
		t.Fatalf("expected 1 assist for p-quiet, got %d", facts.Assists["p-quiet"])
	}
	if facts.YellowCards["p-opp1"] != 1 {
		t.Fatalf("expected 1 yellow for p-opp1, got %d", facts.YellowCards["p-opp1"])
	}
}

func TestFoldPlayerStats_ScorerAndScopes(t *testing.T) {
	t.Parallel()

	facts := BuildMatchFacts(completedFixture())
	p := player.Player{ID: "p-striker", TeamID: "team-a", Name: "Striker", Position: player.PositionForward}

	got := FoldPlayerStats(p, facts)

	if got.Career.Appearances != 1 || got.Career.Goals != 2 || got.Career.Assists != 0 {
		t.Fatalf("unexpected career stats: %+v", got.Career)
	}
	if got.Career.CleanSheets != 1 {
		t.Fatalf("winning side conceded zero, expected clean sheet: %+v", got.Career)
	}
	if got.Career.MinutesPlayed != 90 {
		t.Fatalf("unexpected minutes: %d", got.Career.MinutesPlayed)
	}

	if len(got.Competitions) != 1 {
		t.Fatalf("expected competition entry to be created, got %+v", got.Competitions)
	}
	cs := got.Competitions[0]
	if cs.CompetitionID != "comp-1" || cs.Season != "2025/2026" || cs.Goals != 2 || cs.Appearances != 1 {
		t.Fatalf("unexpected competition stats: %+v", cs)
	}
}

func TestFoldPlayerStats_AppearanceWithoutGoal(t *testing.T) {
	t.Parallel()

	facts := BuildMatchFacts(completedFixture())
	p := player.Player{ID: "p-keeper", TeamID: "team-a", Name: "Keeper", Position: player.PositionGoalkeeper}

	got := FoldPlayerStats(p, facts)

	if got.Career.Appearances != 1 {
		t.Fatalf("expected one appearance, got %d", got.Career.Appearances)
	}
	if got.Career.Goals != 0 || got.Career.Assists != 0 {
		t.Fatalf("expected no goals or assists, got %+v", got.Career)
	}
}

func TestFoldPlayerStats_IdempotentPerFixture(t *testing.T) {
	t.Parallel()

	facts := BuildMatchFacts(completedFixture())
	p := player.Player{ID: "p-striker", TeamID: "team-a", Name: "Striker", Position: player.PositionForward}

	once := FoldPlayerStats(p, facts)
	twice := FoldPlayerStats(once, facts)

	if twice.Career != once.Career {
		t.Fatalf("second fold changed career stats: %+v vs %+v", twice.Career, once.Career)
	}
	if len(twice.FoldedFixtureIDs) != 1 {
		t.Fatalf("expected single ledger entry, got %v", twice.FoldedFixtureIDs)
	}
}

func TestFoldPlayerStats_NonParticipantUntouched(t *testing.T) {
	t.Parallel()

	facts := BuildMatchFacts(completedFixture())
	p := player.Player{ID: "p-elsewhere", TeamID: "team-z", Name: "Elsewhere", Position: player.PositionMidfielder}

	got := FoldPlayerStats(p, facts)

	if got.Career.Appearances != 0 || len(got.FoldedFixtureIDs) != 0 {
		t.Fatalf("non-participant was folded: %+v", got)
	}
}

func TestFoldTeamStats_BothSides(t *testing.T) {
	t.Parallel()

	facts := BuildMatchFacts(completedFixture())

	home := FoldTeamStats(team.Team{ID: "team-a", Name: "Alpha"}, facts)
	away := FoldTeamStats(team.Team{ID: "team-b", Name: "Beta"}, facts)

	if home.Stats.MatchesPlayed != 1 || home.Stats.Wins != 1 || home.Stats.GoalsFor != 2 || home.Stats.GoalsAgainst != 0 {
		t.Fatalf("unexpected home stats: %+v", home.Stats)
	}
	if home.Stats.CleanSheets != 1 {
		t.Fatalf("home conceded zero, expected clean sheet: %+v", home.Stats)
	}
	if away.Stats.MatchesPlayed != 1 || away.Stats.Losses != 1 || away.Stats.GoalsFor != 0 || away.Stats.GoalsAgainst != 2 {
		t.Fatalf("unexpected away stats: %+v", away.Stats)
	}
	if away.Stats.CleanSheets != 0 {
		t.Fatalf("away conceded, no clean sheet expected: %+v", away.Stats)
	}

	if len(home.Performances) != 1 || home.Performances[0].Stats.Wins != 1 {
		t.Fatalf("expected competition performance entry: %+v", home.Performances)
	}
}

func TestFoldTeamStats_IdempotentPerFixture(t *testing.T) {
	t.Parallel()

	facts := BuildMatchFacts(completedFixture())

	once := FoldTeamStats(team.Team{ID: "team-a", Name: "Alpha"}, facts)
	twice := FoldTeamStats(once, facts)

	if twice.Stats != once.Stats {
		t.Fatalf("second fold changed team stats: %+v vs %+v", twice.Stats, once.Stats)
	}
}

func TestFoldTeamStats_Draw(t *testing.T) {
	t.Parallel()

	fx := completedFixture()
	fx.Result = &fixture.Result{HomeScore: 1, AwayScore: 1}
	facts := BuildMatchFacts(fx)

	got := FoldTeamStats(team.Team{ID: "team-a", Name: "Alpha"}, facts)

	if got.Stats.Draws != 1 || got.Stats.Wins != 0 || got.Stats.Losses != 0 {
		t.Fatalf("unexpected draw stats: %+v", got.Stats)
	}
}
