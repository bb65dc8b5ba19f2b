package httpserver

import (
	"net/http"

	"github.com/yndnr/microdog-go/internal/core/service"
	"github.com/yndnr/microdog-go/internal/server/httpserver/handler"
	"github.com/yndnr/microdog-go/internal/telemetry/logger"
	"github.com/yndnr/microdog-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	Resolver *service.Resolver
	Logger   logger.Logger
	// Metrics backs /metrics and request metrics. Nil disables both.
	Metrics *metric.Registry

	// RateLimit is requests per second per client IP; 0 disables it.
	RateLimit float64
	Burst     int
}

// DefaultRouterConfig returns a router configuration for resolver.
func DefaultRouterConfig(resolver *service.Resolver) *RouterConfig {
	return &RouterConfig{
		Resolver:  resolver,
		Logger:    logger.Discard(),
		RateLimit: 1000,
		Burst:     100,
	}
}

// NewRouter builds the HTTP handler tree.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	h := handler.New(cfg.Resolver, log)
	api := Chain(h,
		Recover(log),
		RequestID(log),
		AccessLog(cfg.Metrics),
		RateLimit(cfg.RateLimit, cfg.Burst, cfg.Metrics),
	)

	mux := http.NewServeMux()
	mux.Handle("/", api)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(), Recover(log)))
	}
	return mux
}
