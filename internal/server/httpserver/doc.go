// Package httpserver serves the emulator's HTTP API and metrics.
//
// NewRouter wires the handler package behind the middleware chain
// Recover -> RequestID -> AccessLog -> RateLimit and mounts the Prometheus
// handler at /metrics. Rate limiting is per client IP.
package httpserver
