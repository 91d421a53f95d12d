package fixture

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusCompleted = "COMPLETED"
	StatusPostponed = "POSTPONED"
	StatusCancelled = "CANCELLED"
)

// Finalization tracks the one-way pipeline that turns a live match into
// permanent history. It is independent of the match status above: the
// fixture becomes COMPLETED at the commit point while the pipeline may
// still be folding standings and stats.
const (
	FinalizationNone    = ""
	FinalizationRunning = "FINALIZING"
	FinalizationDone    = "FINALIZED"
	FinalizationFailed  = "FINALIZATION_FAILED"
)

const (
	SportFootball   = "FOOTBALL"
	SportBasketball = "BASKETBALL"
)

// Timeline event types shared across sports plus sport-specific ones.
const (
	EventGoal         = "GOAL"
	EventOwnGoal      = "OWN_GOAL"
	EventYellowCard   = "YELLOW_CARD"
	EventRedCard      = "RED_CARD"
	EventSubstitution = "SUBSTITUTION"
	EventCommentary   = "COMMENTARY"

	EventTwoPointer   = "TWO_POINTER"
	EventThreePointer = "THREE_POINTER"
	EventFreeThrow    = "FREE_THROW"
	EventFoul         = "FOUL"
	EventTimeout      = "TIMEOUT"
)

var footballEventTypes = map[string]struct{}{
	EventGoal:         {},
	EventOwnGoal:      {},
	EventYellowCard:   {},
	EventRedCard:      {},
	EventSubstitution: {},
	EventCommentary:   {},
}

var basketballEventTypes = map[string]struct{}{
	EventTwoPointer:   {},
	EventThreePointer: {},
	EventFreeThrow:    {},
	EventFoul:         {},
	EventTimeout:      {},
	EventSubstitution: {},
	EventCommentary:   {},
}

// EventTypeAllowed reports whether eventType belongs to the sport's catalog.
func EventTypeAllowed(sport, eventType string) bool {
	catalog := footballEventTypes
	if strings.EqualFold(sport, SportBasketball) {
		catalog = basketballEventTypes
	}
	_, ok := catalog[strings.ToUpper(strings.TrimSpace(eventType))]
	return ok
}

// EventRequiresTeam reports whether the event type is meaningless without a
// side attached. Goals, cards and substitutions always belong to a team.
func EventRequiresTeam(eventType string) bool {
	switch strings.ToUpper(strings.TrimSpace(eventType)) {
	case EventGoal, EventOwnGoal, EventYellowCard, EventRedCard, EventSubstitution,
		EventTwoPointer, EventThreePointer, EventFreeThrow, EventFoul:
		return true
	default:
		return false
	}
}

// EventScoreValue returns how many points the event adds to the scoring
// side, zero for non-scoring events.
func EventScoreValue(eventType string) int {
	switch strings.ToUpper(strings.TrimSpace(eventType)) {
	case EventGoal, EventOwnGoal, EventFreeThrow:
		return 1
	case EventTwoPointer:
		return 2
	case EventThreePointer:
		return 3
	default:
		return 0
	}
}

// TimelineEvent is one entry in a match's ordered event log.
type TimelineEvent struct {
	ID              int64
	Type            string
	Minute          int
	InjuryMinute    int
	TeamID          string
	PlayerID        string
	RelatedPlayerID string
	Commentary      string
}

// Result is the outcome block of a completed match. WinnerTeamID is empty
// for a draw.
type Result struct {
	HomeScore         int
	AwayScore         int
	HalfTimeHomeScore int
	HalfTimeAwayScore int
	HomePenalties     *int
	AwayPenalties     *int
	WinnerTeamID      string
}

// SideStats holds per-side match counters.
type SideStats struct {
	Shots         int
	ShotsOnTarget int
	Corners       int
	Fouls         int
	Offsides      int
	YellowCards   int
	RedCards      int
	PossessionPct int
}

type Statistics struct {
	Home SideStats
	Away SideStats
}

// Lineup is one side's named squad for a match.
type Lineup struct {
	TeamID      string
	Formation   string
	StartingXI  []string
	Substitutes []string
}

type Lineups struct {
	Home Lineup
	Away Lineup
}

type Substitution struct {
	TeamID      string
	PlayerOutID string
	PlayerInID  string
	Minute      int
}

type PlayerRating struct {
	PlayerID string
	Rating   float64
}

// Fixture is the permanent record of a scheduled or completed match. Result,
// Statistics, Timeline and ratings are written once by the finalization
// pipeline; the document is never deleted while standings reference it.
type Fixture struct {
	ID                 string
	CompetitionID      string
	Season             string
	Sport              string
	HomeTeamID         string
	AwayTeamID         string
	KickoffAt          time.Time
	Venue              string
	Status             string
	Finalization       string
	Result             *Result
	Statistics         *Statistics
	Lineups            Lineups
	Timeline           []TimelineEvent
	Substitutions      []Substitution
	PlayerRatings      []PlayerRating
	PlayerOfTheMatchID string
	FinalizedAt        *time.Time
	Version            int64
}

func (f Fixture) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("fixture id is required")
	}
	if f.HomeTeamID == "" || f.AwayTeamID == "" {
		return fmt.Errorf("fixture requires both team references")
	}
	if f.HomeTeamID == f.AwayTeamID {
		return fmt.Errorf("fixture teams must differ")
	}
	return nil
}

// Participants returns every player named in either side's lineup, mapped
// to the side that named them. Starters and substitutes both count.
func (f Fixture) Participants() map[string]string {
	out := make(map[string]string)
	for _, id := range f.Lineups.Home.StartingXI {
		out[id] = f.HomeTeamID
	}
	for _, id := range f.Lineups.Home.Substitutes {
		out[id] = f.HomeTeamID
	}
	for _, id := range f.Lineups.Away.StartingXI {
		out[id] = f.AwayTeamID
	}
	for _, id := range f.Lineups.Away.Substitutes {
		out[id] = f.AwayTeamID
	}
	return out
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}
