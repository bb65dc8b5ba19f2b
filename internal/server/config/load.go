package config

import (
	"fmt"

	"github.com/yndnr/microdog-go/internal/infra/confloader"
)

// Load merges the loader's sources over Default and verifies the result.
func Load(l *confloader.Loader) (*EmulatorConfig, error) {
	cfg := Default()
	if err := l.Load(cfg); err != nil {
		return nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
