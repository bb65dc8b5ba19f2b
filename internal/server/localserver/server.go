package localserver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/microdog-go/internal/core/domain"
	"github.com/yndnr/microdog-go/internal/core/service"
	"github.com/yndnr/microdog-go/internal/telemetry/logger"
	"github.com/yndnr/microdog-go/internal/telemetry/metric"
	"github.com/yndnr/microdog-go/pkg/cmap"
)

// MaxLineLength bounds a command line. Longer lines close the connection.
const MaxLineLength = 64 * 1024

const protocol = "local"

// Config holds the local server configuration.
type Config struct {
	// Path is the socket file.
	Path string
	// Rate is the sustained commands per second per connection; 0 disables
	// limiting.
	Rate float64
	// Burst is the limiter bucket size.
	Burst int
	// IdleTimeout closes connections that send nothing for this long.
	IdleTimeout time.Duration
	// WriteTimeout bounds writing one reply.
	WriteTimeout time.Duration
}

// DefaultConfig returns the default configuration for path.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:         path,
		Rate:         1000,
		Burst:        100,
		IdleTimeout:  5 * time.Minute,
		WriteTimeout: 10 * time.Second,
	}
}

// Server is the local socket server.
type Server struct {
	cfg      *Config
	handler  *Handler
	log      logger.Logger
	metrics  *metric.Registry
	listener net.Listener
	conns    *cmap.Map[net.Conn]
	closed   bool
	wg       sync.WaitGroup
	mu       sync.Mutex // guards listener, closed and wg.Add
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithMetrics records connections and commands in m.
func WithMetrics(m *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a local server answering from resolver.
func New(cfg *Config, resolver *service.Resolver, opts ...Option) *Server {
	if cfg == nil {
		cfg = DefaultConfig("")
	}
	s := &Server{
		cfg:     cfg,
		handler: NewHandler(resolver),
		log:     logger.Discard(),
		conns:   cmap.New[net.Conn](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListenAndServe listens on the configured socket path and serves until
// Shutdown. A stale socket file left by a previous run is removed.
func (s *Server) ListenAndServe() error {
	if err := removeStaleSocket(s.cfg.Path); err != nil {
		return err
	}

	ln, err := net.Listen("unix", s.cfg.Path)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Path, err)
	}
	if err := os.Chmod(s.cfg.Path, 0o660); err != nil {
		ln.Close()
		return fmt.Errorf("chmod %s: %w", s.cfg.Path, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return nil
	}
	s.listener = ln
	s.mu.Unlock()

	s.log.Info("local server listening", "address", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosed() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go s.ServeConn(conn)
	}
}

// Shutdown stops accepting connections, closes the open ones and waits
// for their goroutines, or for ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
	var closeErr error
	s.mu.Lock()
	s.closed = true
	if s.listener != nil {
		closeErr = s.listener.Close()
	}
	s.mu.Unlock()

	// No connection can be tracked after closed is set, so this drains
	// every one. Idle clients would otherwise hold Shutdown until
	// IdleTimeout.
	for _, id := range s.conns.Keys() {
		if c, ok := s.conns.Pop(id); ok {
			c.Close()
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if errors.Is(closeErr, net.ErrClosed) {
			return nil
		}
		return closeErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// track registers conn unless the server is shutting down.
func (s *Server) track(id string, conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	s.conns.Set(id, conn)
	return true
}

// ActiveConns returns the number of open connections.
func (s *Server) ActiveConns() int {
	return s.conns.Count()
}

// ServeConn runs the protocol on one connection until the client quits,
// disconnects or idles out. After Shutdown it closes conn at once.
func (s *Server) ServeConn(conn net.Conn) {
	id := ulid.Make().String()
	log := s.log.With("conn_id", id)

	if !s.track(id, conn) {
		conn.Close()
		return
	}
	if s.metrics != nil {
		s.metrics.ConnOpened()
	}
	defer func() {
		s.conns.Delete(id)
		conn.Close()
		if s.metrics != nil {
			s.metrics.ConnClosed()
		}
		log.Debug("connection closed")
		s.wg.Done()
	}()
	log.Debug("connection accepted")

	var limiter *rate.Limiter
	if s.cfg.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.cfg.Rate), s.cfg.Burst)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineLength)
	w := bufio.NewWriter(conn)

	for {
		if s.cfg.IdleTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
				return
			}
		}
		if !scanner.Scan() {
			err := scanner.Err()
			switch {
			case errors.Is(err, bufio.ErrTooLong):
				log.Warn("command line too long")
				s.reply(conn, w, errorReply(domain.ErrInvalidArgument.WithDetails("line too long")))
			case err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed):
				log.Debug("connection read error", "error", err)
			}
			return
		}

		line := scanner.Text()
		start := time.Now()

		var reply string
		var quit bool
		if limiter != nil && !limiter.Allow() {
			reply = errorReply(domain.ErrRateLimited)
			if s.metrics != nil {
				s.metrics.IncRateLimited(protocol)
			}
		} else {
			reply, quit = s.handler.Execute(line)
		}

		if s.metrics != nil {
			s.metrics.RecordRequest(protocol, commandName(line), replyStatus(reply))
			s.metrics.ObserveRequestDuration(protocol, commandName(line), time.Since(start).Seconds())
		}

		if err := s.reply(conn, w, reply); err != nil {
			log.Debug("connection write error", "error", err)
			return
		}
		if quit {
			return
		}
	}
}

func (s *Server) reply(conn net.Conn, w *bufio.Writer, line string) error {
	if s.cfg.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
			return err
		}
	}
	if _, err := w.WriteString(line + "\n"); err != nil {
		return err
	}
	return w.Flush()
}

// removeStaleSocket deletes path if it is a socket nobody listens on.
func removeStaleSocket(path string) error {
	fi, err := os.Lstat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if fi.Mode()&os.ModeSocket == 0 {
		return fmt.Errorf("%s exists and is not a socket", path)
	}
	if c, err := net.DialTimeout("unix", path, 100*time.Millisecond); err == nil {
		c.Close()
		return fmt.Errorf("%s is in use by another server", path)
	}
	return os.Remove(path)
}
