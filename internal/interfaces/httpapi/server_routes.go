package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLiveFixtureRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/live-fixtures/{fixtureID}", handler.GetLiveFixture)
	mux.HandleFunc("POST /v1/live-fixtures/{fixtureID}/events", handler.AppendTimelineEvent)
	mux.HandleFunc("PUT /v1/live-fixtures/{fixtureID}/events/{eventID}", handler.EditTimelineEvent)
	mux.HandleFunc("DELETE /v1/live-fixtures/{fixtureID}/events/{eventID}", handler.DeleteTimelineEvent)
	mux.HandleFunc("POST /v1/live-fixtures/{fixtureID}/goals", handler.RecordGoal)
	mux.HandleFunc("POST /v1/live-fixtures/{fixtureID}/substitutions", handler.RecordSubstitution)
	mux.HandleFunc("PUT /v1/live-fixtures/{fixtureID}/score", handler.UpdateScore)
	mux.HandleFunc("PUT /v1/live-fixtures/{fixtureID}/minute", handler.UpdateMinute)
	mux.HandleFunc("POST /v1/live-fixtures/{fixtureID}/cheer", handler.RecordCheer)
	mux.HandleFunc("PUT /v1/live-fixtures/{fixtureID}/lineups", handler.SetLineup)
	mux.HandleFunc("POST /v1/live-fixtures/{fixtureID}/fan-votes", handler.RecordFanVote)
	mux.HandleFunc("PUT /v1/live-fixtures/{fixtureID}/ratings", handler.RatePlayer)
	mux.HandleFunc("PUT /v1/live-fixtures/{fixtureID}/player-of-the-match", handler.SetPlayerOfTheMatch)
	mux.HandleFunc("POST /v1/live-fixtures/{fixtureID}/end", handler.EndLiveFixture)
}

func registerFixtureRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/fixtures", handler.ScheduleFixture)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}", handler.GetFixture)
	mux.HandleFunc("PATCH /v1/fixtures/{fixtureID}/status", handler.UpdateFixtureStatus)
	mux.HandleFunc("POST /v1/fixtures/{fixtureID}/start", handler.StartLiveFixture)
	mux.HandleFunc("POST /v1/fixtures/{fixtureID}/finalization/resume", handler.ResumeFinalization)
}

func registerCompetitionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/competitions", handler.CreateCompetition)
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competitionID}", handler.GetCompetition)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/fixtures", handler.ListFixturesByCompetition)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/standings", handler.GetCompetitionStandings)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/groups/{groupName}/standings", handler.GetGroupStandings)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/aggregates", handler.GetCompetitionAggregates)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/stats", handler.GetTeamStats)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListPlayersByTeam)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/stats", handler.GetPlayerStats)
}

func registerNotificationRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/notifications", handler.ListNotifications)
	mux.HandleFunc("POST /v1/notifications/{notificationID}/read", handler.MarkNotificationRead)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/reconcile", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReconcileSweep)))
}
