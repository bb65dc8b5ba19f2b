package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/yndnr/microdog-go/internal/telemetry/logger"
)

// Hook releases one component.
type Hook func(context.Context) error

type namedHook struct {
	name string
	fn   Hook
}

// Handler runs shutdown hooks once termination is requested.
type Handler struct {
	timeout time.Duration
	hooks   []namedHook
	mu      sync.Mutex
	done    chan struct{}
	log     logger.Logger

	// signals is replaced in tests.
	signals []os.Signal
}

// NewHandler creates a handler whose hooks share timeout.
func NewHandler(timeout time.Duration, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		timeout: timeout,
		hooks:   make([]namedHook, 0),
		done:    make(chan struct{}),
		log:     log,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// OnShutdown registers a hook. Hooks run in reverse order of registration.
func (h *Handler) OnShutdown(name string, hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, namedHook{name: name, fn: hook})
}

// Wait blocks until a termination signal arrives or ctx is done, then runs
// every hook. The returned error joins the errors of all failed hooks.
func (h *Handler) Wait(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, h.signals...)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		h.log.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		h.log.Info("shutdown requested", "reason", context.Cause(ctx))
	}

	return h.Run()
}

// Run executes the hooks immediately.
func (h *Handler) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	hooks := make([]namedHook, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]
		start := time.Now()
		if err := hook.fn(ctx); err != nil {
			h.log.Error("shutdown hook failed", "hook", hook.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", hook.name, err))
			continue
		}
		h.log.Debug("shutdown hook finished", "hook", hook.name, "elapsed", time.Since(start))
	}

	close(h.done)
	return errors.Join(errs...)
}

// Done is closed once all hooks have run.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
