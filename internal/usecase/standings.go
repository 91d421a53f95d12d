package usecase

import (
	"sort"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/competition"
)

// Outcome letters recorded in a standing row's form window.
const (
	formWin  = "W"
	formDraw = "D"
	formLoss = "L"
)

// StandingsResult is the slice of a finalized fixture the standings fold
// needs.
type StandingsResult struct {
	HomeTeamID string
	AwayTeamID string
	HomeGoals  int
	AwayGoals  int
}

// UpdateStandings folds one finalized result into a standings set and
// returns a new, fully re-ranked slice. The input is never mutated: rows
// are copied, both sides are updated, the whole set is re-sorted by points
// desc, goal difference desc, goals for desc, and positions are reassigned
// 1..N. Teams missing a row get one created on first appearance.
func UpdateStandings(rows []competition.Standing, ps competition.PointsSystem, result StandingsResult) []competition.Standing {
	out := cloneStandings(rows)

	homeIdx := findOrAppendStanding(&out, result.HomeTeamID)
	awayIdx := findOrAppendStanding(&out, result.AwayTeamID)

	out[homeIdx] = applyResultToStanding(out[homeIdx], ps, result.HomeGoals, result.AwayGoals)
	out[awayIdx] = applyResultToStanding(out[awayIdx], ps, result.AwayGoals, result.HomeGoals)

	return RankStandings(out)
}

// RankStandings sorts a standings set by the strict order and reassigns
// 1-based positions. The sort is stable so that rows equal on every key
// keep a deterministic relative order. This is a full recompute, run after
// every single fixture fold.
func RankStandings(rows []competition.Standing) []competition.Standing {
	out := cloneStandings(rows)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].GoalDifference != out[j].GoalDifference {
			return out[i].GoalDifference > out[j].GoalDifference
		}
		return out[i].GoalsFor > out[j].GoalsFor
	})

	for i := range out {
		out[i].Position = i + 1
	}

	return out
}

func applyResultToStanding(row competition.Standing, ps competition.PointsSystem, goalsFor, goalsAgainst int) competition.Standing {
	row.Played++
	row.GoalsFor += goalsFor
	row.GoalsAgainst += goalsAgainst
	row.GoalDifference = row.GoalsFor - row.GoalsAgainst

	switch {
	case goalsFor > goalsAgainst:
		row.Won++
		row.Points += ps.Win
		row.Form = appendForm(row.Form, formWin)
	case goalsFor < goalsAgainst:
		row.Lost++
		row.Points += ps.Loss
		row.Form = appendForm(row.Form, formLoss)
	default:
		row.Drawn++
		row.Points += ps.Draw
		row.Form = appendForm(row.Form, formDraw)
	}

	return row
}

// appendForm keeps the window at the FormWindowSize most recent outcomes,
// evicting the oldest entry first.
func appendForm(form []string, outcome string) []string {
	out := append(append([]string(nil), form...), outcome)
	if len(out) > competition.FormWindowSize {
		out = out[len(out)-competition.FormWindowSize:]
	}
	return out
}

func findOrAppendStanding(rows *[]competition.Standing, teamID string) int {
	for i, row := range *rows {
		if row.TeamID == teamID {
			return i
		}
	}
	*rows = append(*rows, competition.Standing{TeamID: teamID})
	return len(*rows) - 1
}

func cloneStandings(rows []competition.Standing) []competition.Standing {
	out := make([]competition.Standing, len(rows))
	copy(out, rows)
	for i := range out {
		out[i].Form = append([]string(nil), rows[i].Form...)
	}
	return out
}
