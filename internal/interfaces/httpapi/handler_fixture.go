package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/usecase"
)

type scheduleFixtureRequest struct {
	ID            string `json:"id"`
	CompetitionID string `json:"competitionId"`
	Season        string `json:"season"`
	Sport         string `json:"sport" validate:"required,oneof=FOOTBALL BASKETBALL"`
	HomeTeamID    string `json:"homeTeamId" validate:"required"`
	AwayTeamID    string `json:"awayTeamId" validate:"required"`
	KickoffAt     string `json:"kickoffAt" validate:"required"`
	Venue         string `json:"venue"`
}

type updateFixtureStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) ScheduleFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScheduleFixture")
	defer span.End()

	var req scheduleFixtureRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kickoffAt, err := time.Parse(time.RFC3339, req.KickoffAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: kickoffAt must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	created, err := h.fixtureService.Schedule(ctx, fixture.Fixture{
		ID:            req.ID,
		CompetitionID: req.CompetitionID,
		Season:        req.Season,
		Sport:         req.Sport,
		HomeTeamID:    req.HomeTeamID,
		AwayTeamID:    req.AwayTeamID,
		KickoffAt:     kickoffAt,
		Venue:         req.Venue,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "schedule fixture failed", "home_team_id", req.HomeTeamID, "away_team_id", req.AwayTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "fixture scheduled", fixtureToDTO(ctx, created))
}

func (h *Handler) GetFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixture")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	item, err := h.fixtureService.GetByID(ctx, fixtureID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "fixture fetched", fixtureToDTO(ctx, item))
}

func (h *Handler) ListFixturesByCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixturesByCompetition")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	items, err := h.fixtureService.ListByCompetition(ctx, competitionID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dtos := make([]fixtureDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, fixtureToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, "fixtures fetched", dtos)
}

func (h *Handler) UpdateFixtureStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateFixtureStatus")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req updateFixtureStatusRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.fixtureService.UpdateStatus(ctx, fixtureID, req.Status)
	if err != nil {
		h.logger.WarnContext(ctx, "update fixture status failed", "fixture_id", fixtureID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "fixture status updated", fixtureToDTO(ctx, updated))
}
