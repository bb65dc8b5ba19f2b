package handler

import (
	"net/http"
	"time"
)

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:         "healthy",
		Time:           time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds:  int64(time.Since(h.started).Seconds()),
		ConvertEntries: h.resolver.Record().Len(),
	})
}
