package httpapi

import "net/http"

// RunReconcileSweep walks fixtures stuck in a finalization state and
// resumes their pipelines. Exposed as an internal job so a scheduler can
// trigger it on top of the in-process ticker.
func (h *Handler) RunReconcileSweep(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReconcileSweep")
	defer span.End()

	report, err := h.reconciliationService.Sweep(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reconcile sweep failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "reconcile sweep completed", report)
}
