package config

import "time"

// Default configuration values.
const (
	DefaultDumpPath    = "./io.microdog.ini"
	DefaultLocalSocket = "/var/run/microdog/microdog.sock"
	DefaultHTTPAddr    = "127.0.0.1:5090"

	DefaultRate  = 1000.0
	DefaultBurst = 100

	DefaultShutdownTimeout = 10 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default emulator configuration.
func Default() *EmulatorConfig {
	return &EmulatorConfig{
		Dump: DumpSection{
			Path: DefaultDumpPath,
		},
		Server: ServerSection{
			Local: LocalConfig{
				Enabled: true,
				Path:    DefaultLocalSocket,
			},
			HTTP: HTTPConfig{
				Enabled: false,
				Addr:    DefaultHTTPAddr,
			},
			RateLimit: RateLimitConfig{
				Rate:  DefaultRate,
				Burst: DefaultBurst,
			},
			Shutdown: ShutdownConfig{
				Timeout: DefaultShutdownTimeout,
			},
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
