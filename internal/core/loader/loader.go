package loader

import (
	"os"

	"github.com/yndnr/microdog-go/internal/core/domain"
	"github.com/yndnr/microdog-go/internal/storage/dumpfile"
	"github.com/yndnr/microdog-go/internal/telemetry/logger"
)

// DefaultDumpPath is used when no dump path is supplied.
const DefaultDumpPath = "./io.microdog.ini"

// Source is a stream of dump triples.
type Source interface {
	// Name identifies the source in logs and in the built record.
	Name() string
	// Scan calls fn once per (section, key, value) triple, in file order.
	Scan(fn dumpfile.ScanFunc) error
}

// Option configures a load.
type Option func(*options)

type options struct {
	log logger.Logger
}

// WithLogger sets the logger used for diagnostics during the load.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func buildOptions(opts []Option) *options {
	o := &options{log: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Load reads the dump at path, or DefaultDumpPath when path is empty.
func Load(path string, opts ...Option) (*domain.TokenRecord, error) {
	if path == "" {
		path = DefaultDumpPath
	}

	r, err := dumpfile.Open(path)
	if err != nil {
		return nil, domain.ErrSourceUnreadable.WithDetails(path).WithCause(err)
	}
	return LoadSource(r, opts...)
}

// LoadSource builds a record from any triple source.
func LoadSource(src Source, opts ...Option) (*domain.TokenRecord, error) {
	o := buildOptions(opts)
	log := o.log.With("source", src.Name())

	b := NewBuilder(src.Name(), log)
	if err := src.Scan(b.Add); err != nil {
		if domain.IsDomainError(err, "") {
			return nil, err
		}
		return nil, domain.ErrSourceUnreadable.WithDetails(src.Name()).WithCause(err)
	}

	log.Debug("loading dog table")
	rec, err := b.Build()
	if err != nil {
		return nil, err
	}

	log.Info("loaded emulated microdog device",
		"algorithm", rec.Algorithm().String(),
		"entries", rec.Len(),
		"skipped", rec.Skipped(),
	)
	return rec, nil
}

// exit is replaced in tests.
var exit = os.Exit

// MustLoad loads the dump at path and logs its summary. Any error is
// logged and terminates the process: there is nothing to emulate without
// a usable record.
func MustLoad(path string, log logger.Logger) *domain.TokenRecord {
	if log == nil {
		log = logger.Default()
	}

	rec, err := Load(path, WithLogger(log))
	if err != nil {
		log.Error("cannot load microdog dump",
			"path", path,
			"code", domain.GetErrorCode(err),
			"error", err,
		)
		exit(1)
		return nil
	}

	LogSummary(log, rec)
	return rec
}
