package livefixture

import (
	"fmt"
	"time"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
)

// CheerMeter counts fan cheers per side during the live window.
type CheerMeter struct {
	Home int
	Away int
}

// FanVote is a running player-of-the-match vote tally.
type FanVote struct {
	PlayerID string
	Votes    int
}

// LiveFixture is the actively mutated twin of a Fixture while the match is
// in progress. It is correlated with the permanent record by FixtureID and
// is discarded once finalization has copied its data across.
type LiveFixture struct {
	FixtureID          string
	CompetitionID      string
	Season             string
	Sport              string
	HomeTeamID         string
	AwayTeamID         string
	KickoffAt          time.Time
	CurrentMinute      int
	InjuryTime         int
	Result             fixture.Result
	Statistics         fixture.Statistics
	Lineups            fixture.Lineups
	Timeline           []fixture.TimelineEvent
	Substitutions      []fixture.Substitution
	PlayerRatings      []fixture.PlayerRating
	PlayerOfTheMatchID string
	CheerMeter         CheerMeter
	FanVotes           []FanVote
	NextEventID        int64
	Version            int64
}

// FromFixture seeds the live twin from a scheduled fixture.
func FromFixture(f fixture.Fixture, kickoffAt time.Time) LiveFixture {
	return LiveFixture{
		FixtureID:     f.ID,
		CompetitionID: f.CompetitionID,
		Season:        f.Season,
		Sport:         f.Sport,
		HomeTeamID:    f.HomeTeamID,
		AwayTeamID:    f.AwayTeamID,
		KickoffAt:     kickoffAt,
		Lineups:       cloneLineups(f.Lineups),
		NextEventID:   1,
	}
}

// The With* appliers return an updated copy and never mutate the receiver's
// slices in place, so a caller holding the old value keeps a consistent
// snapshot if the optimistic save fails.

// WithEvent appends a timeline event and assigns it the next event id.
func (lf LiveFixture) WithEvent(ev fixture.TimelineEvent) (LiveFixture, fixture.TimelineEvent) {
	out := lf.clone()
	ev.ID = out.NextEventID
	out.NextEventID++
	out.Timeline = append(out.Timeline, ev)
	return out, ev
}

// WithEditedEvent replaces the event with the given id.
func (lf LiveFixture) WithEditedEvent(eventID int64, ev fixture.TimelineEvent) (LiveFixture, bool) {
	out := lf.clone()
	for i := range out.Timeline {
		if out.Timeline[i].ID == eventID {
			ev.ID = eventID
			out.Timeline[i] = ev
			return out, true
		}
	}
	return lf, false
}

// WithoutEvent removes the event with the given id.
func (lf LiveFixture) WithoutEvent(eventID int64) (LiveFixture, bool) {
	out := lf.clone()
	for i := range out.Timeline {
		if out.Timeline[i].ID == eventID {
			out.Timeline = append(out.Timeline[:i:i], out.Timeline[i+1:]...)
			return out, true
		}
	}
	return lf, false
}

// WithSubstitution swaps playerOut for playerIn on the named side. The
// outgoing player must currently be on the pitch for that team.
func (lf LiveFixture) WithSubstitution(teamID, playerOutID, playerInID string, minute int) (LiveFixture, error) {
	lineup, err := lf.lineupFor(teamID)
	if err != nil {
		return lf, err
	}
	if !lf.OnPitch(teamID, playerOutID) {
		return lf, fmt.Errorf("player %s is not on the pitch for team %s", playerOutID, teamID)
	}

	out := lf.clone()
	updated := *lineup
	updated.StartingXI = replaceID(cloneIDs(updated.StartingXI), playerOutID, playerInID)
	// The outgoing player keeps a bench slot: the lineup must keep naming
	// every player who took part in the match.
	updated.Substitutes = append(removeID(cloneIDs(updated.Substitutes), playerInID), playerOutID)
	if teamID == out.HomeTeamID {
		out.Lineups.Home = updated
	} else {
		out.Lineups.Away = updated
	}
	out.Substitutions = append(out.Substitutions, fixture.Substitution{
		TeamID:      teamID,
		PlayerOutID: playerOutID,
		PlayerInID:  playerInID,
		Minute:      minute,
	})
	return out, nil
}

// WithScore overrides the running score directly. Used for corrections; it
// records no timeline event.
func (lf LiveFixture) WithScore(home, away int) LiveFixture {
	out := lf.clone()
	out.Result.HomeScore = home
	out.Result.AwayScore = away
	return out
}

// WithAddedScore increments the running score for the given side.
func (lf LiveFixture) WithAddedScore(teamID string, points int) (LiveFixture, error) {
	out := lf.clone()
	switch teamID {
	case out.HomeTeamID:
		out.Result.HomeScore += points
	case out.AwayTeamID:
		out.Result.AwayScore += points
	default:
		return lf, fmt.Errorf("team %s is not part of this fixture", teamID)
	}
	return out, nil
}

// OnPitch reports whether the player is currently in the starting group for
// the given side (starters minus anybody already substituted off or sent
// off, plus anybody substituted on).
func (lf LiveFixture) OnPitch(teamID, playerID string) bool {
	lineup, err := lf.lineupFor(teamID)
	if err != nil {
		return false
	}
	if _, sentOff := lf.SentOffAt(playerID); sentOff {
		return false
	}
	for _, id := range lineup.StartingXI {
		if id == playerID {
			return true
		}
	}
	return false
}

// SentOffAt returns the minute the player received a red card, if any.
func (lf LiveFixture) SentOffAt(playerID string) (int, bool) {
	for _, ev := range lf.Timeline {
		if ev.Type == fixture.EventRedCard && ev.PlayerID == playerID {
			return ev.Minute, true
		}
	}
	return 0, false
}

func (lf LiveFixture) lineupFor(teamID string) (*fixture.Lineup, error) {
	switch teamID {
	case lf.HomeTeamID:
		return &lf.Lineups.Home, nil
	case lf.AwayTeamID:
		return &lf.Lineups.Away, nil
	default:
		return nil, fmt.Errorf("team %s is not part of this fixture", teamID)
	}
}

func (lf LiveFixture) clone() LiveFixture {
	out := lf
	out.Lineups = cloneLineups(lf.Lineups)
	out.Timeline = append([]fixture.TimelineEvent(nil), lf.Timeline...)
	out.Substitutions = append([]fixture.Substitution(nil), lf.Substitutions...)
	out.PlayerRatings = append([]fixture.PlayerRating(nil), lf.PlayerRatings...)
	out.FanVotes = append([]FanVote(nil), lf.FanVotes...)
	return out
}

func cloneLineups(l fixture.Lineups) fixture.Lineups {
	return fixture.Lineups{
		Home: fixture.Lineup{
			TeamID:      l.Home.TeamID,
			Formation:   l.Home.Formation,
			StartingXI:  cloneIDs(l.Home.StartingXI),
			Substitutes: cloneIDs(l.Home.Substitutes),
		},
		Away: fixture.Lineup{
			TeamID:      l.Away.TeamID,
			Formation:   l.Away.Formation,
			StartingXI:  cloneIDs(l.Away.StartingXI),
			Substitutes: cloneIDs(l.Away.Substitutes),
		},
	}
}

func cloneIDs(ids []string) []string {
	return append([]string(nil), ids...)
}

func replaceID(ids []string, from, to string) []string {
	for i, id := range ids {
		if id == from {
			ids[i] = to
		}
	}
	return ids
}

func removeID(ids []string, target string) []string {
	for i, id := range ids {
		if id == target {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
