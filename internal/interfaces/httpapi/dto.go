package httpapi

import (
	"context"
	"time"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/competition"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/livefixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/notification"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/player"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/team"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/usecase"
)

type timelineEventDTO struct {
	ID              int64  `json:"id"`
	Type            string `json:"type"`
	Minute          int    `json:"minute"`
	InjuryMinute    int    `json:"injuryMinute,omitempty"`
	TeamID          string `json:"teamId,omitempty"`
	PlayerID        string `json:"playerId,omitempty"`
	RelatedPlayerID string `json:"relatedPlayerId,omitempty"`
	Commentary      string `json:"commentary,omitempty"`
}

type resultDTO struct {
	HomeScore         int    `json:"homeScore"`
	AwayScore         int    `json:"awayScore"`
	HalfTimeHomeScore int    `json:"halfTimeHomeScore"`
	HalfTimeAwayScore int    `json:"halfTimeAwayScore"`
	HomePenalties     *int   `json:"homePenalties,omitempty"`
	AwayPenalties     *int   `json:"awayPenalties,omitempty"`
	WinnerTeamID      string `json:"winnerTeamId,omitempty"`
}

type sideStatsDTO struct {
	Shots         int `json:"shots"`
	ShotsOnTarget int `json:"shotsOnTarget"`
	Corners       int `json:"corners"`
	Fouls         int `json:"fouls"`
	Offsides      int `json:"offsides"`
	YellowCards   int `json:"yellowCards"`
	RedCards      int `json:"redCards"`
	PossessionPct int `json:"possessionPct"`
}

type statisticsDTO struct {
	Home sideStatsDTO `json:"home"`
	Away sideStatsDTO `json:"away"`
}

type lineupDTO struct {
	TeamID      string   `json:"teamId"`
	Formation   string   `json:"formation,omitempty"`
	StartingXI  []string `json:"startingXI"`
	Substitutes []string `json:"substitutes"`
}

type lineupsDTO struct {
	Home lineupDTO `json:"home"`
	Away lineupDTO `json:"away"`
}

type substitutionDTO struct {
	TeamID      string `json:"teamId"`
	PlayerOutID string `json:"playerOutId"`
	PlayerInID  string `json:"playerInId"`
	Minute      int    `json:"minute"`
}

type playerRatingDTO struct {
	PlayerID string  `json:"playerId"`
	Rating   float64 `json:"rating"`
}

type fixtureDTO struct {
	ID                 string             `json:"id"`
	CompetitionID      string             `json:"competitionId,omitempty"`
	Season             string             `json:"season,omitempty"`
	Sport              string             `json:"sport"`
	HomeTeamID         string             `json:"homeTeamId"`
	AwayTeamID         string             `json:"awayTeamId"`
	KickoffAt          string             `json:"kickoffAt"`
	Venue              string             `json:"venue,omitempty"`
	Status             string             `json:"status"`
	Finalization       string             `json:"finalization,omitempty"`
	Result             *resultDTO         `json:"result,omitempty"`
	Statistics         *statisticsDTO     `json:"statistics,omitempty"`
	Lineups            lineupsDTO         `json:"lineups"`
	Timeline           []timelineEventDTO `json:"timeline,omitempty"`
	Substitutions      []substitutionDTO  `json:"substitutions,omitempty"`
	PlayerRatings      []playerRatingDTO  `json:"playerRatings,omitempty"`
	PlayerOfTheMatchID string             `json:"playerOfTheMatchId,omitempty"`
	FinalizedAt        string             `json:"finalizedAt,omitempty"`
}

type cheerMeterDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type fanVoteDTO struct {
	PlayerID string `json:"playerId"`
	Votes    int    `json:"votes"`
}

type liveFixtureDTO struct {
	FixtureID          string             `json:"fixtureId"`
	CompetitionID      string             `json:"competitionId,omitempty"`
	Season             string             `json:"season,omitempty"`
	Sport              string             `json:"sport"`
	HomeTeamID         string             `json:"homeTeamId"`
	AwayTeamID         string             `json:"awayTeamId"`
	KickoffAt          string             `json:"kickoffAt"`
	CurrentMinute      int                `json:"currentMinute"`
	InjuryTime         int                `json:"injuryTime"`
	Result             resultDTO          `json:"result"`
	Statistics         statisticsDTO      `json:"statistics"`
	Lineups            lineupsDTO         `json:"lineups"`
	Timeline           []timelineEventDTO `json:"timeline"`
	Substitutions      []substitutionDTO  `json:"substitutions,omitempty"`
	PlayerRatings      []playerRatingDTO  `json:"playerRatings,omitempty"`
	PlayerOfTheMatchID string             `json:"playerOfTheMatchId,omitempty"`
	CheerMeter         cheerMeterDTO      `json:"cheerMeter"`
	FanVotes           []fanVoteDTO       `json:"fanVotes,omitempty"`
}

type standingDTO struct {
	TeamID         string   `json:"teamId"`
	Position       int      `json:"position"`
	Played         int      `json:"played"`
	Won            int      `json:"won"`
	Drawn          int      `json:"drawn"`
	Lost           int      `json:"lost"`
	GoalsFor       int      `json:"goalsFor"`
	GoalsAgainst   int      `json:"goalsAgainst"`
	GoalDifference int      `json:"goalDifference"`
	Points         int      `json:"points"`
	Form           []string `json:"form,omitempty"`
}

type topScorerDTO struct {
	PlayerID string `json:"playerId"`
	TeamID   string `json:"teamId"`
	Goals    int    `json:"goals"`
}

type aggregateStatsDTO struct {
	CompletedFixtures int            `json:"completedFixtures"`
	TotalGoals        int            `json:"totalGoals"`
	AvgGoalsPerMatch  float64        `json:"avgGoalsPerMatch"`
	TopScorers        []topScorerDTO `json:"topScorers"`
}

type competitionDTO struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Sport  string   `json:"sport"`
	Season string   `json:"season"`
	Type   string   `json:"type"`
	Groups []string `json:"groups,omitempty"`
}

type playerDTO struct {
	ID       string `json:"id"`
	TeamID   string `json:"teamId"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

type teamDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
}

type careerStatsDTO struct {
	Appearances   int `json:"appearances"`
	Goals         int `json:"goals"`
	Assists       int `json:"assists"`
	YellowCards   int `json:"yellowCards"`
	RedCards      int `json:"redCards"`
	CleanSheets   int `json:"cleanSheets"`
	MinutesPlayed int `json:"minutesPlayed"`
}

type playerCompetitionStatsDTO struct {
	CompetitionID string `json:"competitionId"`
	Season        string `json:"season"`
	TeamID        string `json:"teamId"`
	Appearances   int    `json:"appearances"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	YellowCards   int    `json:"yellowCards"`
	RedCards      int    `json:"redCards"`
	MinutesPlayed int    `json:"minutesPlayed"`
}

type playerStatsDTO struct {
	PlayerID     string                      `json:"playerId"`
	Name         string                      `json:"name"`
	Position     string                      `json:"position"`
	Career       careerStatsDTO              `json:"career"`
	Competitions []playerCompetitionStatsDTO `json:"competitions"`
}

type teamCountersDTO struct {
	MatchesPlayed int `json:"matchesPlayed"`
	Wins          int `json:"wins"`
	Draws         int `json:"draws"`
	Losses        int `json:"losses"`
	GoalsFor      int `json:"goalsFor"`
	GoalsAgainst  int `json:"goalsAgainst"`
	CleanSheets   int `json:"cleanSheets"`
}

type teamPerformanceDTO struct {
	CompetitionID string          `json:"competitionId"`
	Season        string          `json:"season"`
	Stats         teamCountersDTO `json:"stats"`
}

type teamStatsDTO struct {
	TeamID       string               `json:"teamId"`
	Name         string               `json:"name"`
	Overall      teamCountersDTO      `json:"overall"`
	Performances []teamPerformanceDTO `json:"performances"`
}

type notificationDTO struct {
	ID        string `json:"id"`
	Recipient string `json:"recipient"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Channel   string `json:"channel"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

func timelineEventToDTO(v fixture.TimelineEvent) timelineEventDTO {
	return timelineEventDTO{
		ID:              v.ID,
		Type:            v.Type,
		Minute:          v.Minute,
		InjuryMinute:    v.InjuryMinute,
		TeamID:          v.TeamID,
		PlayerID:        v.PlayerID,
		RelatedPlayerID: v.RelatedPlayerID,
		Commentary:      v.Commentary,
	}
}

func timelineToDTO(events []fixture.TimelineEvent) []timelineEventDTO {
	out := make([]timelineEventDTO, 0, len(events))
	for _, ev := range events {
		out = append(out, timelineEventToDTO(ev))
	}
	return out
}

func resultToDTO(v fixture.Result) resultDTO {
	return resultDTO{
		HomeScore:         v.HomeScore,
		AwayScore:         v.AwayScore,
		HalfTimeHomeScore: v.HalfTimeHomeScore,
		HalfTimeAwayScore: v.HalfTimeAwayScore,
		HomePenalties:     v.HomePenalties,
		AwayPenalties:     v.AwayPenalties,
		WinnerTeamID:      v.WinnerTeamID,
	}
}

func sideStatsToDTO(v fixture.SideStats) sideStatsDTO {
	return sideStatsDTO{
		Shots:         v.Shots,
		ShotsOnTarget: v.ShotsOnTarget,
		Corners:       v.Corners,
		Fouls:         v.Fouls,
		Offsides:      v.Offsides,
		YellowCards:   v.YellowCards,
		RedCards:      v.RedCards,
		PossessionPct: v.PossessionPct,
	}
}

func statisticsToDTO(v fixture.Statistics) statisticsDTO {
	return statisticsDTO{
		Home: sideStatsToDTO(v.Home),
		Away: sideStatsToDTO(v.Away),
	}
}

func lineupToDTO(v fixture.Lineup) lineupDTO {
	return lineupDTO{
		TeamID:      v.TeamID,
		Formation:   v.Formation,
		StartingXI:  append([]string(nil), v.StartingXI...),
		Substitutes: append([]string(nil), v.Substitutes...),
	}
}

func lineupsToDTO(v fixture.Lineups) lineupsDTO {
	return lineupsDTO{
		Home: lineupToDTO(v.Home),
		Away: lineupToDTO(v.Away),
	}
}

func substitutionsToDTO(subs []fixture.Substitution) []substitutionDTO {
	out := make([]substitutionDTO, 0, len(subs))
	for _, sub := range subs {
		out = append(out, substitutionDTO{
			TeamID:      sub.TeamID,
			PlayerOutID: sub.PlayerOutID,
			PlayerInID:  sub.PlayerInID,
			Minute:      sub.Minute,
		})
	}
	return out
}

func ratingsToDTO(ratings []fixture.PlayerRating) []playerRatingDTO {
	out := make([]playerRatingDTO, 0, len(ratings))
	for _, rating := range ratings {
		out = append(out, playerRatingDTO{PlayerID: rating.PlayerID, Rating: rating.Rating})
	}
	return out
}

func fixtureToDTO(ctx context.Context, v fixture.Fixture) fixtureDTO {
	ctx, span := startSpan(ctx, "httpapi.fixtureToDTO")
	defer span.End()

	dto := fixtureDTO{
		ID:                 v.ID,
		CompetitionID:      v.CompetitionID,
		Season:             v.Season,
		Sport:              v.Sport,
		HomeTeamID:         v.HomeTeamID,
		AwayTeamID:         v.AwayTeamID,
		KickoffAt:          v.KickoffAt.UTC().Format(time.RFC3339),
		Venue:              v.Venue,
		Status:             v.Status,
		Finalization:       v.Finalization,
		Lineups:            lineupsToDTO(v.Lineups),
		Timeline:           timelineToDTO(v.Timeline),
		Substitutions:      substitutionsToDTO(v.Substitutions),
		PlayerRatings:      ratingsToDTO(v.PlayerRatings),
		PlayerOfTheMatchID: v.PlayerOfTheMatchID,
	}
	if v.Result != nil {
		result := resultToDTO(*v.Result)
		dto.Result = &result
	}
	if v.Statistics != nil {
		stats := statisticsToDTO(*v.Statistics)
		dto.Statistics = &stats
	}
	if v.FinalizedAt != nil {
		dto.FinalizedAt = v.FinalizedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func liveFixtureToDTO(ctx context.Context, v livefixture.LiveFixture) liveFixtureDTO {
	ctx, span := startSpan(ctx, "httpapi.liveFixtureToDTO")
	defer span.End()

	fanVotes := make([]fanVoteDTO, 0, len(v.FanVotes))
	for _, vote := range v.FanVotes {
		fanVotes = append(fanVotes, fanVoteDTO{PlayerID: vote.PlayerID, Votes: vote.Votes})
	}

	return liveFixtureDTO{
		FixtureID:          v.FixtureID,
		CompetitionID:      v.CompetitionID,
		Season:             v.Season,
		Sport:              v.Sport,
		HomeTeamID:         v.HomeTeamID,
		AwayTeamID:         v.AwayTeamID,
		KickoffAt:          v.KickoffAt.UTC().Format(time.RFC3339),
		CurrentMinute:      v.CurrentMinute,
		InjuryTime:         v.InjuryTime,
		Result:             resultToDTO(v.Result),
		Statistics:         statisticsToDTO(v.Statistics),
		Lineups:            lineupsToDTO(v.Lineups),
		Timeline:           timelineToDTO(v.Timeline),
		Substitutions:      substitutionsToDTO(v.Substitutions),
		PlayerRatings:      ratingsToDTO(v.PlayerRatings),
		PlayerOfTheMatchID: v.PlayerOfTheMatchID,
		CheerMeter:         cheerMeterDTO{Home: v.CheerMeter.Home, Away: v.CheerMeter.Away},
		FanVotes:           fanVotes,
	}
}

func standingsToDTO(rows []competition.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingDTO{
			TeamID:         row.TeamID,
			Position:       row.Position,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
			Form:           append([]string(nil), row.Form...),
		})
	}
	return out
}

func aggregatesToDTO(v competition.AggregateStats) aggregateStatsDTO {
	scorers := make([]topScorerDTO, 0, len(v.TopScorers))
	for _, s := range v.TopScorers {
		scorers = append(scorers, topScorerDTO{PlayerID: s.PlayerID, TeamID: s.TeamID, Goals: s.Goals})
	}
	return aggregateStatsDTO{
		CompletedFixtures: v.CompletedFixtures,
		TotalGoals:        v.TotalGoals,
		AvgGoalsPerMatch:  v.AvgGoalsPerMatch,
		TopScorers:        scorers,
	}
}

func competitionToDTO(v competition.Competition) competitionDTO {
	groups := make([]string, 0, len(v.Groups))
	for _, g := range v.Groups {
		groups = append(groups, g.Name)
	}
	return competitionDTO{
		ID:     v.ID,
		Name:   v.Name,
		Sport:  v.Sport,
		Season: v.Season,
		Type:   v.Type,
		Groups: groups,
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:       v.ID,
		TeamID:   v.TeamID,
		Name:     v.Name,
		Position: string(v.Position),
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:        v.ID,
		Name:      v.Name,
		ShortName: v.ShortName,
	}
}

func playerStatsToDTO(v usecase.PlayerStats) playerStatsDTO {
	competitions := make([]playerCompetitionStatsDTO, 0, len(v.Competitions))
	for _, cs := range v.Competitions {
		competitions = append(competitions, playerCompetitionStatsDTO{
			CompetitionID: cs.CompetitionID,
			Season:        cs.Season,
			TeamID:        cs.TeamID,
			Appearances:   cs.Appearances,
			Goals:         cs.Goals,
			Assists:       cs.Assists,
			YellowCards:   cs.YellowCards,
			RedCards:      cs.RedCards,
			MinutesPlayed: cs.MinutesPlayed,
		})
	}
	return playerStatsDTO{
		PlayerID: v.PlayerID,
		Name:     v.Name,
		Position: string(v.Position),
		Career: careerStatsDTO{
			Appearances:   v.Career.Appearances,
			Goals:         v.Career.Goals,
			Assists:       v.Career.Assists,
			YellowCards:   v.Career.YellowCards,
			RedCards:      v.Career.RedCards,
			CleanSheets:   v.Career.CleanSheets,
			MinutesPlayed: v.Career.MinutesPlayed,
		},
		Competitions: competitions,
	}
}

func teamCountersToDTO(v team.Stats) teamCountersDTO {
	return teamCountersDTO{
		MatchesPlayed: v.MatchesPlayed,
		Wins:          v.Wins,
		Draws:         v.Draws,
		Losses:        v.Losses,
		GoalsFor:      v.GoalsFor,
		GoalsAgainst:  v.GoalsAgainst,
		CleanSheets:   v.CleanSheets,
	}
}

func teamStatsToDTO(v usecase.TeamStats) teamStatsDTO {
	performances := make([]teamPerformanceDTO, 0, len(v.Performances))
	for _, p := range v.Performances {
		performances = append(performances, teamPerformanceDTO{
			CompetitionID: p.CompetitionID,
			Season:        p.Season,
			Stats:         teamCountersToDTO(p.Stats),
		})
	}
	return teamStatsDTO{
		TeamID:       v.TeamID,
		Name:         v.Name,
		Overall:      teamCountersToDTO(v.Overall),
		Performances: performances,
	}
}

func notificationToDTO(v notification.Notification) notificationDTO {
	return notificationDTO{
		ID:        v.ID,
		Recipient: v.Recipient,
		Title:     v.Title,
		Message:   v.Message,
		Channel:   v.Channel,
		Read:      v.Read,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
