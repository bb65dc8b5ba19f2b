package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Verify validates the configuration.
func Verify(cfg *EmulatorConfig) error {
	if strings.TrimSpace(cfg.Dump.Path) == "" {
		return errors.New("dump.path is required")
	}
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if !cfg.Local.Enabled && !cfg.HTTP.Enabled {
		return errors.New("at least one of server.local and server.http must be enabled")
	}
	if cfg.Local.Enabled && cfg.Local.Path == "" {
		return errors.New("server.local.path is required")
	}
	if cfg.HTTP.Enabled {
		if _, _, err := net.SplitHostPort(cfg.HTTP.Addr); err != nil {
			return fmt.Errorf("server.http.addr %q: %w", cfg.HTTP.Addr, err)
		}
	}
	if cfg.RateLimit.Rate < 0 {
		return errors.New("server.ratelimit.rate must not be negative")
	}
	if cfg.RateLimit.Rate > 0 && cfg.RateLimit.Burst < 1 {
		return errors.New("server.ratelimit.burst must be at least 1")
	}
	if cfg.Shutdown.Timeout <= 0 {
		return errors.New("server.shutdown.timeout must be positive")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return fmt.Errorf("log.format %q is not json or text", cfg.Format)
	}
	return nil
}
