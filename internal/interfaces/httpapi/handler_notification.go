package httpapi

import (
	"net/http"
	"strconv"
	"strings"
)

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNotifications")
	defer span.End()

	recipient := strings.TrimSpace(r.URL.Query().Get("recipient"))
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			limit = parsed
		}
	}

	items, err := h.notificationService.ListByRecipient(ctx, recipient, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dtos := make([]notificationDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, notificationToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, "notifications fetched", dtos)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkNotificationRead")
	defer span.End()

	notificationID := r.PathValue("notificationID")
	if err := h.notificationService.MarkRead(ctx, notificationID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "notification marked read", nil)
}
