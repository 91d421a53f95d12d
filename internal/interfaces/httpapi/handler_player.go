package httpapi

import (
	"net/http"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/player"
)

type createPlayerRequest struct {
	ID       string `json:"id"`
	TeamID   string `json:"teamId" validate:"required"`
	Name     string `json:"name" validate:"required,max=120"`
	Position string `json:"position" validate:"required,oneof=GK DEF MID FWD"`
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.playerService.Create(ctx, player.Player{
		ID:       req.ID,
		TeamID:   req.TeamID,
		Name:     req.Name,
		Position: player.Position(req.Position),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "player created", playerToDTO(created))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	item, err := h.playerService.GetByID(ctx, playerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "player fetched", playerToDTO(item))
}

func (h *Handler) ListPlayersByTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersByTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	items, err := h.playerService.ListByTeam(ctx, teamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dtos := make([]playerDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, playerToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, "players fetched", dtos)
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	playerID := r.PathValue("playerID")
	stats, err := h.playerService.Stats(ctx, playerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "player stats fetched", playerStatsToDTO(stats))
}
