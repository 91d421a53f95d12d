package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/usecase"
)

type timelineEventRequest struct {
	Type            string `json:"type" validate:"required"`
	Minute          int    `json:"minute" validate:"gte=0"`
	InjuryMinute    int    `json:"injuryMinute" validate:"gte=0"`
	TeamID          string `json:"teamId"`
	PlayerID        string `json:"playerId"`
	RelatedPlayerID string `json:"relatedPlayerId"`
	Commentary      string `json:"commentary"`
}

type goalRequest struct {
	TeamID       string `json:"teamId" validate:"required"`
	ScorerID     string `json:"scorerId"`
	AssistID     string `json:"assistId"`
	Minute       int    `json:"minute" validate:"gte=0"`
	InjuryMinute int    `json:"injuryMinute" validate:"gte=0"`
	Type         string `json:"type"`
}

type substitutionRequest struct {
	TeamID      string `json:"teamId" validate:"required"`
	PlayerOutID string `json:"playerOutId" validate:"required"`
	PlayerInID  string `json:"playerInId" validate:"required"`
	Minute      int    `json:"minute" validate:"gte=0"`
}

type scoreRequest struct {
	HomeScore int `json:"homeScore" validate:"gte=0"`
	AwayScore int `json:"awayScore" validate:"gte=0"`
}

type minuteRequest struct {
	Minute     int `json:"minute" validate:"gte=0"`
	InjuryTime int `json:"injuryTime" validate:"gte=0"`
}

type cheerRequest struct {
	TeamID string `json:"teamId" validate:"required"`
}

type lineupRequest struct {
	TeamID      string   `json:"teamId" validate:"required"`
	Formation   string   `json:"formation"`
	StartingXI  []string `json:"startingXI" validate:"required,min=1,dive,required"`
	Substitutes []string `json:"substitutes" validate:"dive,required"`
}

type fanVoteRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}

type playerRatingRequest struct {
	PlayerID string  `json:"playerId" validate:"required"`
	Rating   float64 `json:"rating" validate:"gte=0,lte=10"`
}

type playerOfTheMatchRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}

func (h *Handler) StartLiveFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartLiveFixture")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	live, err := h.liveFixtureService.Start(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "start live fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "live fixture started", liveFixtureToDTO(ctx, live))
}

func (h *Handler) GetLiveFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveFixture")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	live, err := h.liveFixtureService.GetByFixtureID(ctx, fixtureID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "live fixture fetched", liveFixtureToDTO(ctx, live))
}

func (h *Handler) AppendTimelineEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AppendTimelineEvent")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req timelineEventRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	event, err := h.liveFixtureService.AppendTimelineEvent(ctx, fixtureID, usecase.TimelineEventInput{
		Type:            req.Type,
		Minute:          req.Minute,
		InjuryMinute:    req.InjuryMinute,
		TeamID:          req.TeamID,
		PlayerID:        req.PlayerID,
		RelatedPlayerID: req.RelatedPlayerID,
		Commentary:      req.Commentary,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "append timeline event failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "timeline event recorded", timelineEventToDTO(event))
}

func (h *Handler) EditTimelineEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EditTimelineEvent")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	eventID, err := parseEventID(r.PathValue("eventID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req timelineEventRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	event, err := h.liveFixtureService.EditTimelineEvent(ctx, fixtureID, eventID, usecase.TimelineEventInput{
		Type:            req.Type,
		Minute:          req.Minute,
		InjuryMinute:    req.InjuryMinute,
		TeamID:          req.TeamID,
		PlayerID:        req.PlayerID,
		RelatedPlayerID: req.RelatedPlayerID,
		Commentary:      req.Commentary,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "edit timeline event failed", "fixture_id", fixtureID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "timeline event updated", timelineEventToDTO(event))
}

func (h *Handler) DeleteTimelineEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTimelineEvent")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	eventID, err := parseEventID(r.PathValue("eventID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.liveFixtureService.DeleteTimelineEvent(ctx, fixtureID, eventID); err != nil {
		h.logger.WarnContext(ctx, "delete timeline event failed", "fixture_id", fixtureID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "timeline event deleted", nil)
}

func (h *Handler) RecordGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordGoal")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req goalRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	live, err := h.liveFixtureService.RecordGoal(ctx, fixtureID, usecase.GoalInput{
		TeamID:       req.TeamID,
		ScorerID:     req.ScorerID,
		AssistID:     req.AssistID,
		Minute:       req.Minute,
		InjuryMinute: req.InjuryMinute,
		Type:         req.Type,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record goal failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "goal recorded", liveFixtureToDTO(ctx, live))
}

func (h *Handler) RecordSubstitution(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordSubstitution")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req substitutionRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	live, err := h.liveFixtureService.RecordSubstitution(ctx, fixtureID, usecase.SubstitutionInput{
		TeamID:      req.TeamID,
		PlayerOutID: req.PlayerOutID,
		PlayerInID:  req.PlayerInID,
		Minute:      req.Minute,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record substitution failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "substitution recorded", liveFixtureToDTO(ctx, live))
}

func (h *Handler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateScore")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req scoreRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	live, err := h.liveFixtureService.UpdateScore(ctx, fixtureID, req.HomeScore, req.AwayScore)
	if err != nil {
		h.logger.WarnContext(ctx, "update score failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "score updated", liveFixtureToDTO(ctx, live))
}

func (h *Handler) UpdateMinute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMinute")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req minuteRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	live, err := h.liveFixtureService.UpdateMinute(ctx, fixtureID, req.Minute, req.InjuryTime)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "minute updated", liveFixtureToDTO(ctx, live))
}

func (h *Handler) RecordCheer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordCheer")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req cheerRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	meter, err := h.liveFixtureService.RecordCheer(ctx, fixtureID, req.TeamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "cheer recorded", cheerMeterDTO{Home: meter.Home, Away: meter.Away})
}

func (h *Handler) SetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetLineup")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req lineupRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	live, err := h.liveFixtureService.SetLineup(ctx, fixtureID, usecase.LineupInput{
		TeamID:      req.TeamID,
		Formation:   req.Formation,
		StartingXI:  req.StartingXI,
		Substitutes: req.Substitutes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set lineup failed", "fixture_id", fixtureID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "lineup saved", liveFixtureToDTO(ctx, live))
}

func (h *Handler) RecordFanVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordFanVote")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req fanVoteRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.liveFixtureService.RecordFanVote(ctx, fixtureID, req.PlayerID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "fan vote recorded", nil)
}

func (h *Handler) RatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RatePlayer")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req playerRatingRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.liveFixtureService.RatePlayer(ctx, fixtureID, req.PlayerID, req.Rating); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "player rated", nil)
}

func (h *Handler) SetPlayerOfTheMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetPlayerOfTheMatch")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req playerOfTheMatchRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.liveFixtureService.SetPlayerOfTheMatch(ctx, fixtureID, req.PlayerID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "player of the match set", nil)
}

// EndLiveFixture runs the full finalization pipeline: materialize the live
// state into the fixture, fold standings, player and team stats, then
// archive the live twin.
func (h *Handler) EndLiveFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EndLiveFixture")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	fx, err := h.finalizationService.Finalize(ctx, fixtureID)
	if err != nil {
		h.logger.ErrorContext(ctx, "finalize fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "fixture finalized", fixtureToDTO(ctx, fx))
}

func (h *Handler) ResumeFinalization(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResumeFinalization")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	fx, err := h.finalizationService.Resume(ctx, fixtureID)
	if err != nil {
		h.logger.ErrorContext(ctx, "resume finalization failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "finalization resumed", fixtureToDTO(ctx, fx))
}

func parseEventID(raw string) (int64, error) {
	eventID, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || eventID < 1 {
		return 0, fmt.Errorf("%w: event id must be a positive integer", usecase.ErrInvalidInput)
	}
	return eventID, nil
}
