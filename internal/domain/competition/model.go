package competition

import "fmt"

const (
	TypeLeague   = "LEAGUE"
	TypeKnockout = "KNOCKOUT"
	TypeHybrid   = "HYBRID"
)

// PointsSystem maps match outcomes to table points.
type PointsSystem struct {
	Win  int
	Draw int
	Loss int
}

// DefaultPointsSystem is used when a competition has none configured.
func DefaultPointsSystem() PointsSystem {
	return PointsSystem{Win: 3, Draw: 1, Loss: 0}
}

// FormWindowSize bounds the recent-results window kept per standing row.
const FormWindowSize = 5

// Standing is one team's aggregate record within a league table or group.
// Form holds the last FormWindowSize outcomes oldest first.
type Standing struct {
	TeamID         string
	Position       int
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Form           []string
}

// Group is a group-stage subset of a competition with its own table.
type Group struct {
	Name       string
	FixtureIDs []string
	Standings  []Standing
}

// KnockoutRound is one bracket stage of a knockout competition.
type KnockoutRound struct {
	Name       string
	FixtureIDs []string
}

type TopScorer struct {
	PlayerID string
	TeamID   string
	Goals    int
}

// AggregateStats is derived from every completed fixture of the
// competition, recomputed from scratch on each finalization.
type AggregateStats struct {
	CompletedFixtures int
	TotalGoals        int
	AvgGoalsPerMatch  float64
	TopScorers        []TopScorer
}

// Competition owns its standings, groups and knockout rounds outright;
// none of those sub-documents has an independent lifecycle.
type Competition struct {
	ID             string
	Name           string
	Sport          string
	Season         string
	Type           string
	PointsSystem   *PointsSystem
	Standings      []Standing
	Groups         []Group
	KnockoutRounds []KnockoutRound
	// FoldedFixtureIDs records which finalized fixtures have already been
	// folded into the standings, making re-finalization a no-op.
	FoldedFixtureIDs []string
	Aggregates       AggregateStats
	Version          int64
}

func (c Competition) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("competition id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("competition name is required")
	}
	switch c.Type {
	case TypeLeague, TypeKnockout, TypeHybrid:
	default:
		return fmt.Errorf("invalid competition type: %s", c.Type)
	}
	return nil
}

// EffectivePointsSystem falls back to the default 3-1-0 scheme.
func (c Competition) EffectivePointsSystem() PointsSystem {
	if c.PointsSystem == nil {
		return DefaultPointsSystem()
	}
	return *c.PointsSystem
}

func (c Competition) HasFolded(fixtureID string) bool {
	for _, id := range c.FoldedFixtureIDs {
		if id == fixtureID {
			return true
		}
	}
	return false
}

// GroupIndexForFixture finds the group whose fixture list contains the
// given fixture id.
func (c Competition) GroupIndexForFixture(fixtureID string) (int, bool) {
	for i, g := range c.Groups {
		for _, id := range g.FixtureIDs {
			if id == fixtureID {
				return i, true
			}
		}
	}
	return 0, false
}

// InKnockoutRounds reports whether the fixture id appears in any bracket
// round.
func (c Competition) InKnockoutRounds(fixtureID string) bool {
	for _, r := range c.KnockoutRounds {
		for _, id := range r.FixtureIDs {
			if id == fixtureID {
				return true
			}
		}
	}
	return false
}

// HasLeagueStanding reports whether the team is part of the league-wide
// table.
func (c Competition) HasLeagueStanding(teamID string) bool {
	for _, row := range c.Standings {
		if row.TeamID == teamID {
			return true
		}
	}
	return false
}
