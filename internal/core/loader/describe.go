package loader

import (
	"fmt"
	"io"

	"github.com/yndnr/microdog-go/internal/core/domain"
	"github.com/yndnr/microdog-go/internal/telemetry/logger"
)

// Describe writes a human-readable summary of rec to w.
// The password is never written.
func Describe(w io.Writer, rec *domain.TokenRecord) error {
	s := rec.Summary()
	_, err := fmt.Fprintf(w,
		"Dog Serial: %s\nDog ID: %s\nMfg Serial: %s\nAlgorithm Descriptor: %s\nDog Memory: %s\nDog Crypto Convert Table Entries: %d\n",
		s.Serial, s.ID, s.MfgSerial, s.Algorithm, s.Memory, s.ConvertEntries)
	if err != nil {
		return err
	}
	if s.Skipped > 0 {
		_, err = fmt.Fprintf(w, "Skipped Malformed Entries: %d\n", s.Skipped)
	}
	return err
}

// LogSummary logs the decoded identity and table size of rec.
func LogSummary(log logger.Logger, rec *domain.TokenRecord) {
	s := rec.Summary()
	log.Info("microdog identity",
		"serial", s.Serial,
		"id", s.ID,
		"mfg_serial", s.MfgSerial,
		"algorithm", s.Algorithm,
		"entries", s.ConvertEntries,
		"skipped", s.Skipped,
	)
	log.Debug("microdog memory image", "memory", s.Memory)
}
