package config

import "time"

// EmulatorConfig is the root configuration for microdog-server.
type EmulatorConfig struct {
	Dump   DumpSection   `koanf:"dump" yaml:"dump"`
	Server ServerSection `koanf:"server" yaml:"server"`
	Log    LogSection    `koanf:"log" yaml:"log"`
}

// DumpSection locates the device dump.
type DumpSection struct {
	Path string `koanf:"path" yaml:"path"`
}

// ServerSection configures the emulator endpoints.
type ServerSection struct {
	Local     LocalConfig     `koanf:"local" yaml:"local"`
	HTTP      HTTPConfig      `koanf:"http" yaml:"http"`
	RateLimit RateLimitConfig `koanf:"ratelimit" yaml:"ratelimit"`
	Shutdown  ShutdownConfig  `koanf:"shutdown" yaml:"shutdown"`
}

// LocalConfig configures the local socket the emulated driver talks to.
type LocalConfig struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Path    string `koanf:"path" yaml:"path"`
}

// HTTPConfig configures the HTTP inspection and metrics server.
type HTTPConfig struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Addr    string `koanf:"addr" yaml:"addr"`
}

// RateLimitConfig bounds requests per local connection and per HTTP
// client. A zero Rate disables limiting.
type RateLimitConfig struct {
	Rate  float64 `koanf:"rate" yaml:"rate"`
	Burst int     `koanf:"burst" yaml:"burst"`
}

// ShutdownConfig bounds graceful shutdown.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}
