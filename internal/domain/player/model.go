package player

import "fmt"

// Position categories shared by both sports; basketball squads reuse the
// generic slots rather than a parallel hierarchy.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// CareerStats are lifetime cumulative counters. They only ever grow;
// corrections go through explicit flows, not through the aggregator.
type CareerStats struct {
	Appearances   int
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	CleanSheets   int
	MinutesPlayed int
}

// CompetitionStats is one per-scope cumulative record keyed by
// (competition, season).
type CompetitionStats struct {
	CompetitionID string
	Season        string
	TeamID        string
	Appearances   int
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	MinutesPlayed int
}

type Player struct {
	ID       string
	TeamID   string
	Name     string
	Position Position
	Career   CareerStats
	// Competitions holds per-scope stats; an entry is created the first
	// time the player appears in that competition/season.
	Competitions []CompetitionStats
	// FoldedFixtureIDs guards against double-counting a finalized fixture.
	FoldedFixtureIDs []string
	Version          int64
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	return nil
}

func (p Player) HasFolded(fixtureID string) bool {
	for _, id := range p.FoldedFixtureIDs {
		if id == fixtureID {
			return true
		}
	}
	return false
}

// CompetitionStatsIndex returns the index of the stats entry for the given
// scope, or -1 when the player has no entry yet.
func (p Player) CompetitionStatsIndex(competitionID, season string) int {
	for i, cs := range p.Competitions {
		if cs.CompetitionID == competitionID && cs.Season == season {
			return i
		}
	}
	return -1
}
