package httpserver

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/yndnr/microdog-go/internal/telemetry/logger"
)

// Server is the HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger routes net/http's internal error log to l at warn level.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.httpServer.ErrorLog = slog.NewLogLogger(logger.Slog(l).Handler(), slog.LevelWarn)
	}
}

// New creates an HTTP server on addr.
func New(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
		handler: handler,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListenAndServe serves until Shutdown; it then returns http.ErrServerClosed.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve serves on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
