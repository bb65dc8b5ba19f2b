package handler

import (
	"time"

	"github.com/yndnr/microdog-go/internal/core/domain"
)

// Response is the standard API response envelope.
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// ResolveRequest is the request body for POST /v1/resolve.
type ResolveRequest struct {
	// Request is the challenge in hex, e.g. "AA".
	Request string `json:"request"`
}

// ResolveResponse is the data of a successful POST /v1/resolve.
type ResolveResponse struct {
	Found       bool   `json:"found"`
	Response    uint32 `json:"response"`
	ResponseHex string `json:"response_hex"`
}

// TokenResponse is the data of GET /v1/token.
type TokenResponse struct {
	domain.Summary
	IndexBuckets int `json:"index_buckets"`
}

// HealthResponse is the data of GET /health.
type HealthResponse struct {
	Status         string `json:"status"`
	Time           string `json:"time"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	ConvertEntries int    `json:"convert_entries"`
}
