package usecase

import (
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/player"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/team"
)

// fullMatchMinutes is credited to every participant. Deriving true minutes
// from kickoff/substitution/red-card timestamps is a known follow-up; the
// flat value matches what downstream consumers were built against.
// TODO: derive per-player minutes from the substitution and red-card
// entries already present in the timeline.
const fullMatchMinutes = 90

// MatchFacts is the per-player/per-team digest of one finalized fixture,
// derived once and folded into every affected stats document.
type MatchFacts struct {
	FixtureID     string
	CompetitionID string
	Season        string
	HomeTeamID    string
	AwayTeamID    string
	HomeGoals     int
	AwayGoals     int
	// Participants maps every player named in either lineup to their side.
	Participants map[string]string
	Goals        map[string]int
	Assists      map[string]int
	YellowCards  map[string]int
	RedCards     map[string]int
}

// BuildMatchFacts digests a completed fixture's lineups and timeline. Goals
// are attributed to the scoring player, assists to the related player on
// goal events.
func BuildMatchFacts(fx fixture.Fixture) MatchFacts {
	facts := MatchFacts{
		FixtureID:     fx.ID,
		CompetitionID: fx.CompetitionID,
		Season:        fx.Season,
		HomeTeamID:    fx.HomeTeamID,
		AwayTeamID:    fx.AwayTeamID,
		Participants:  fx.Participants(),
		Goals:         make(map[string]int),
		Assists:       make(map[string]int),
		YellowCards:   make(map[string]int),
		RedCards:      make(map[string]int),
	}
	if fx.Result != nil {
		facts.HomeGoals = fx.Result.HomeScore
		facts.AwayGoals = fx.Result.AwayScore
	}

	for _, ev := range fx.Timeline {
		switch ev.Type {
		case fixture.EventGoal, fixture.EventTwoPointer, fixture.EventThreePointer, fixture.EventFreeThrow:
			if ev.PlayerID != "" {
				facts.Goals[ev.PlayerID] += max(1, fixture.EventScoreValue(ev.Type))
			}
			if ev.RelatedPlayerID != "" {
				facts.Assists[ev.RelatedPlayerID]++
			}
		case fixture.EventYellowCard:
			if ev.PlayerID != "" {
				facts.YellowCards[ev.PlayerID]++
			}
		case fixture.EventRedCard:
			if ev.PlayerID != "" {
				facts.RedCards[ev.PlayerID]++
			}
		}
	}

	return facts
}

// ConcededBy returns the goals scored against the given side.
func (f MatchFacts) ConcededBy(teamID string) int {
	if teamID == f.HomeTeamID {
		return f.AwayGoals
	}
	return f.HomeGoals
}

// ScoredBy returns the goals scored by the given side.
func (f MatchFacts) ScoredBy(teamID string) int {
	if teamID == f.HomeTeamID {
		return f.HomeGoals
	}
	return f.AwayGoals
}

// FoldPlayerStats accumulates one match into a player's career and
// competition-scoped stats and returns the updated copy. The fold is
// guarded by the player's folded-fixture ledger: re-running it for the
// same fixture returns the input unchanged, so counters are never doubled.
func FoldPlayerStats(p player.Player, facts MatchFacts) player.Player {
	if p.HasFolded(facts.FixtureID) {
		return p
	}
	sideID, participated := facts.Participants[p.ID]
	if !participated {
		return p
	}

	out := p
	out.Competitions = append([]player.CompetitionStats(nil), p.Competitions...)
	out.FoldedFixtureIDs = append(append([]string(nil), p.FoldedFixtureIDs...), facts.FixtureID)

	goals := facts.Goals[p.ID]
	assists := facts.Assists[p.ID]
	yellows := facts.YellowCards[p.ID]
	reds := facts.RedCards[p.ID]
	cleanSheet := facts.ConcededBy(sideID) == 0

	out.Career.Appearances++
	out.Career.Goals += goals
	out.Career.Assists += assists
	out.Career.YellowCards += yellows
	out.Career.RedCards += reds
	out.Career.MinutesPlayed += fullMatchMinutes
	if cleanSheet {
		out.Career.CleanSheets++
	}

	if facts.CompetitionID != "" {
		idx := out.CompetitionStatsIndex(facts.CompetitionID, facts.Season)
		if idx < 0 {
			out.Competitions = append(out.Competitions, player.CompetitionStats{
				CompetitionID: facts.CompetitionID,
				Season:        facts.Season,
				TeamID:        sideID,
			})
			idx = len(out.Competitions) - 1
		}
		cs := &out.Competitions[idx]
		cs.Appearances++
		cs.Goals += goals
		cs.Assists += assists
		cs.YellowCards += yellows
		cs.RedCards += reds
		cs.MinutesPlayed += fullMatchMinutes
	}

	return out
}

// FoldTeamStats accumulates one match into a team's aggregate stats and its
// per-competition performance entry, guarded by the same per-fixture
// ledger as the player fold.
func FoldTeamStats(t team.Team, facts MatchFacts) team.Team {
	if t.HasFolded(facts.FixtureID) {
		return t
	}
	if t.ID != facts.HomeTeamID && t.ID != facts.AwayTeamID {
		return t
	}

	out := t
	out.Performances = append([]team.CompetitionPerformance(nil), t.Performances...)
	out.FoldedFixtureIDs = append(append([]string(nil), t.FoldedFixtureIDs...), facts.FixtureID)

	scored := facts.ScoredBy(t.ID)
	conceded := facts.ConcededBy(t.ID)

	out.Stats = foldSideStats(out.Stats, scored, conceded)

	if facts.CompetitionID != "" {
		idx := out.PerformanceIndex(facts.CompetitionID, facts.Season)
		if idx < 0 {
			out.Performances = append(out.Performances, team.CompetitionPerformance{
				CompetitionID: facts.CompetitionID,
				Season:        facts.Season,
			})
			idx = len(out.Performances) - 1
		}
		out.Performances[idx].Stats = foldSideStats(out.Performances[idx].Stats, scored, conceded)
	}

	return out
}

func foldSideStats(s team.Stats, scored, conceded int) team.Stats {
	s.MatchesPlayed++
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		s.Wins++
	case scored < conceded:
		s.Losses++
	default:
		s.Draws++
	}
	if conceded == 0 {
		s.CleanSheets++
	}
	return s
}
