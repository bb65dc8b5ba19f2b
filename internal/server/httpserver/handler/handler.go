package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/microdog-go/internal/core/domain"
	"github.com/yndnr/microdog-go/internal/core/service"
	"github.com/yndnr/microdog-go/internal/telemetry/logger"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 64 * 1024

// Handler routes API requests.
type Handler struct {
	resolver *service.Resolver
	log      logger.Logger
	mux      *http.ServeMux
	started  time.Time
}

// New creates a Handler answering from resolver.
func New(resolver *service.Resolver, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	h := &Handler{
		resolver: resolver,
		log:      log,
		mux:      http.NewServeMux(),
		started:  time.Now(),
	}
	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /v1/token", h.handleGetToken)
	h.mux.HandleFunc("POST /v1/resolve", h.handleResolve)
}

// writeJSON writes a success envelope.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(NewResponse(requestID, data)); err != nil {
		h.log.Error("failed to encode response", "request_id", requestID, "error", err)
	}
}

// writeError writes an error envelope.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(NewErrorResponse(getRequestID(r), code, message, details))
}

// handleServiceError converts domain errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsDomainError(err, "") {
		code := domain.GetErrorCode(err)
		h.writeError(w, r, errorCodeToHTTPStatus(code), code, err.Error(), nil)
		return
	}

	logger.L(r.Context()).Error("internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, domain.ErrInternal.Code, "internal server error", nil)
}

// errorCodeToHTTPStatus maps MD-<AREA>-<NNNN> codes to HTTP statuses.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4290"):
		return http.StatusTooManyRequests
	case strings.HasSuffix(code, "-4000"), strings.HasPrefix(code, "MD-ARG-"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getRequestID returns the ID the RequestID middleware put in the context.
func getRequestID(r *http.Request) string {
	return logger.RequestIDFromContext(r.Context())
}
