package httpapi

import (
	"net/http"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/competition"
)

type createCompetitionRequest struct {
	ID         string   `json:"id"`
	Name       string   `json:"name" validate:"required,max=120"`
	Sport      string   `json:"sport" validate:"required"`
	Season     string   `json:"season" validate:"required"`
	Type       string   `json:"type" validate:"required,oneof=LEAGUE KNOCKOUT HYBRID"`
	Groups     []string `json:"groups"`
	PointsWin  *int     `json:"pointsWin"`
	PointsDraw *int     `json:"pointsDraw"`
	PointsLoss *int     `json:"pointsLoss"`
}

func (h *Handler) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCompetition")
	defer span.End()

	var req createCompetitionRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item := competition.Competition{
		ID:     req.ID,
		Name:   req.Name,
		Sport:  req.Sport,
		Season: req.Season,
		Type:   req.Type,
	}
	for _, name := range req.Groups {
		item.Groups = append(item.Groups, competition.Group{Name: name})
	}
	if req.PointsWin != nil && req.PointsDraw != nil && req.PointsLoss != nil {
		item.PointsSystem = &competition.PointsSystem{
			Win:  *req.PointsWin,
			Draw: *req.PointsDraw,
			Loss: *req.PointsLoss,
		}
	}

	created, err := h.competitionService.Create(ctx, item)
	if err != nil {
		h.logger.WarnContext(ctx, "create competition failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "competition created", competitionToDTO(created))
}

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.competitionService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]competitionDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, competitionToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, "competitions fetched", dtos)
}

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetition")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	item, err := h.competitionService.GetByID(ctx, competitionID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "competition fetched", competitionToDTO(item))
}

func (h *Handler) GetCompetitionStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetitionStandings")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	rows, err := h.competitionService.Standings(ctx, competitionID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "standings fetched", standingsToDTO(rows))
}

func (h *Handler) GetGroupStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGroupStandings")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	groupName := r.PathValue("groupName")
	rows, err := h.competitionService.GroupStandings(ctx, competitionID, groupName)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "group standings fetched", standingsToDTO(rows))
}

func (h *Handler) GetCompetitionAggregates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetitionAggregates")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	stats, err := h.competitionService.Aggregates(ctx, competitionID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "aggregates fetched", aggregatesToDTO(stats))
}
