package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/yndnr/microdog-go/internal/core/domain"
	"github.com/yndnr/microdog-go/internal/telemetry/logger"
)

// handleGetToken handles GET /v1/token. The password is not part of the
// summary.
func (h *Handler) handleGetToken(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, TokenResponse{
		Summary:      h.resolver.Record().Summary(),
		IndexBuckets: h.resolver.IndexBuckets(),
	})
}

// handleResolve handles POST /v1/resolve.
func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, http.StatusRequestEntityTooLarge, domain.ErrInvalidArgument.Code,
				fmt.Sprintf("request body exceeds %d bytes", MaxBodyBytes), nil)
			return
		}
		h.writeError(w, r, http.StatusBadRequest, domain.ErrInvalidArgument.Code, "invalid JSON body", nil)
		return
	}

	response, err := h.resolver.ResolveHex(req.Request)
	if err != nil {
		logger.L(r.Context()).Debug("resolve failed", "request", req.Request, "code", domain.GetErrorCode(err))
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, ResolveResponse{
		Found:       true,
		Response:    response,
		ResponseHex: fmt.Sprintf("%08X", response),
	})
}
