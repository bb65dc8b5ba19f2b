package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/yndnr/microdog-go/internal/core/loader"
	"github.com/yndnr/microdog-go/internal/core/service"
	"github.com/yndnr/microdog-go/internal/infra/buildinfo"
	"github.com/yndnr/microdog-go/internal/infra/confloader"
	"github.com/yndnr/microdog-go/internal/infra/shutdown"
	"github.com/yndnr/microdog-go/internal/server/config"
	"github.com/yndnr/microdog-go/internal/server/httpserver"
	"github.com/yndnr/microdog-go/internal/server/localserver"
	"github.com/yndnr/microdog-go/internal/telemetry/logger"
	"github.com/yndnr/microdog-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		dumpPath    = flag.String("dump", "", "Path to the device dump (overrides dump.path)")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("microdog-server %s\n", buildinfo.String())
		return nil
	}

	cl := newConfigLoader(*configFile, *dumpPath)
	cfg, err := config.Load(cl)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	info := buildinfo.Get()
	log.Info("starting microdog-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", *configFile)

	// Exits the process if the dump cannot be loaded.
	rec := loader.MustLoad(cfg.Dump.Path, log)

	metrics := metric.Global()
	resolver := service.NewResolver(rec,
		service.WithMetrics(metrics),
		service.WithLogger(log.With("component", "resolver")),
	)
	if err := metrics.Register(metric.NewCollector(rec, resolver.IndexBuckets())); err != nil {
		return fmt.Errorf("register token collector: %w", err)
	}

	sh := shutdown.NewHandler(cfg.Server.Shutdown.Timeout, log)

	if cfg.Server.Local.Enabled {
		startLocal(cfg, resolver, metrics, log, sh)
	}
	if cfg.Server.HTTP.Enabled {
		startHTTP(cfg, resolver, metrics, log, sh)
	}
	if *configFile != "" {
		if err := watchConfig(cl, log, sh); err != nil {
			log.Warn("config watcher disabled", "error", err)
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := sh.Wait(context.Background()); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

func newConfigLoader(configFile, dumpPath string) *confloader.Loader {
	var opts []confloader.Option
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}
	if dumpPath != "" {
		opts = append(opts, confloader.WithOverrides(map[string]any{"dump.path": dumpPath}))
	}
	return confloader.NewLoader(opts...)
}

func startLocal(cfg *config.EmulatorConfig, resolver *service.Resolver, m *metric.Registry, log logger.Logger, sh *shutdown.Handler) {
	lc := localserver.DefaultConfig(cfg.Server.Local.Path)
	lc.Rate = cfg.Server.RateLimit.Rate
	lc.Burst = cfg.Server.RateLimit.Burst

	srv := localserver.New(lc, resolver,
		localserver.WithLogger(log.With("component", "localserver")),
		localserver.WithMetrics(m),
	)
	sh.OnShutdown("local server", srv.Shutdown)

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Error("local server error", "error", err)
		}
	}()
}

func startHTTP(cfg *config.EmulatorConfig, resolver *service.Resolver, m *metric.Registry, log logger.Logger, sh *shutdown.Handler) {
	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Resolver:  resolver,
		Logger:    log.With("component", "httpserver"),
		Metrics:   m,
		RateLimit: cfg.Server.RateLimit.Rate,
		Burst:     cfg.Server.RateLimit.Burst,
	})
	srv := httpserver.New(cfg.Server.HTTP.Addr, router,
		httpserver.WithLogger(log.With("component", "httpserver")))
	sh.OnShutdown("http server", srv.Shutdown)

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()
}

// watchConfig re-applies log.level when the config file changes. Other
// settings, the dump included, need a restart.
func watchConfig(cl *confloader.Loader, log logger.Logger, sh *shutdown.Handler) error {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return err
	}
	if err := w.Watch(cl.FilePath()); err != nil {
		w.Stop()
		return err
	}

	w.OnChange(func(path string) {
		next := config.Default()
		if err := cl.Reload(next); err != nil {
			log.Warn("config reload failed", "path", path, "error", err)
			return
		}
		if err := config.Verify(next); err != nil {
			log.Warn("config reload rejected", "path", path, "error", err)
			return
		}
		if next.Log.Level != logger.GetLevel() {
			logger.SetLevel(next.Log.Level)
			log.Info("log level changed", "level", next.Log.Level)
		}
	})
	w.StartAsync()

	sh.OnShutdown("config watcher", func(context.Context) error {
		return w.Stop()
	})
	return nil
}
