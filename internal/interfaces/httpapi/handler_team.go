package httpapi

import (
	"net/http"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/team"
)

type createTeamRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required,max=120"`
	ShortName string `json:"shortName" validate:"max=10"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.Create(ctx, team.Team{
		ID:        req.ID,
		Name:      req.Name,
		ShortName: req.ShortName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "team created", teamToDTO(created))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]teamDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, teamToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, "teams fetched", dtos)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	item, err := h.teamService.GetByID(ctx, teamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "team fetched", teamToDTO(item))
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	teamID := r.PathValue("teamID")
	stats, err := h.teamService.Stats(ctx, teamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "team stats fetched", teamStatsToDTO(stats))
}
