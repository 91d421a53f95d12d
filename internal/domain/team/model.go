package team

import "fmt"

// Stats are additive aggregate counters updated after every finalized
// match.
type Stats struct {
	MatchesPlayed int
	Wins          int
	Draws         int
	Losses        int
	GoalsFor      int
	GoalsAgainst  int
	CleanSheets   int
}

// CompetitionPerformance is the per-competition/season breakdown of the
// same counters.
type CompetitionPerformance struct {
	CompetitionID string
	Season        string
	Stats         Stats
}

type Team struct {
	ID           string
	Name         string
	ShortName    string
	Stats        Stats
	Performances []CompetitionPerformance
	// FoldedFixtureIDs guards against double-counting a finalized fixture.
	FoldedFixtureIDs []string
	Version          int64
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

func (t Team) HasFolded(fixtureID string) bool {
	for _, id := range t.FoldedFixtureIDs {
		if id == fixtureID {
			return true
		}
	}
	return false
}

func (t Team) PerformanceIndex(competitionID, season string) int {
	for i, p := range t.Performances {
		if p.CompetitionID == competitionID && p.Season == season {
			return i
		}
	}
	return -1
}
