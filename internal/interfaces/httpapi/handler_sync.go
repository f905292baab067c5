package httpapi

import "net/http"

// RunSync refreshes players, clubs and fixtures from the upstream game API.
// The route sits behind the sync token so only the operator or a scheduler
// can trigger a full refresh.
func (h *Handler) RunSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSync")
	defer span.End()

	result, err := h.syncService.Run(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
