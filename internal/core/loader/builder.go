package loader

import (
	"fmt"
	"strings"

	"github.com/yndnr/microdog-go/internal/core/domain"
	"github.com/yndnr/microdog-go/internal/telemetry/logger"
)

// MaxConvertEntries caps the size of a convert table.
const MaxConvertEntries = 1 << 20

// rawEntry is a convert entry exactly as it appeared in the dump.
type rawEntry struct {
	request  string
	response string
}

// Builder accumulates dump triples into a TokenRecord.
//
// A Builder is not safe for concurrent use. The record it builds is.
type Builder struct {
	identity  domain.Identity
	hasMemory bool

	// candidates holds the raw entries of every CONVERT_* section, keyed
	// by the upper-cased section name, in file order.
	candidates map[string][]rawEntry

	source string
	log    logger.Logger
}

// NewBuilder creates an empty Builder.
func NewBuilder(source string, log logger.Logger) *Builder {
	if log == nil {
		log = logger.Discard()
	}
	return &Builder{
		candidates: make(map[string][]rawEntry),
		source:     source,
		log:        log,
	}
}

// Add feeds one triple to the builder. It fails only on a malformed
// identity field; convert entries are validated in Build.
func (b *Builder) Add(section, key, value string) error {
	switch {
	case strings.EqualFold(section, domain.InfoSection):
		return b.addIdentity(key, value)
	case hasPrefixFold(section, domain.ConvertSectionPrefix):
		name := strings.ToUpper(section)
		b.candidates[name] = append(b.candidates[name], rawEntry{request: key, response: value})
	}
	return nil
}

func (b *Builder) addIdentity(key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case domain.KeySerial:
		b.identity.Serial, err = domain.ParseHexUint32(value)
	case domain.KeyID:
		var id []byte
		if id, err = domain.DecodeHexFixed(value, domain.IDLength); err == nil {
			copy(b.identity.ID[:], id)
		}
	case domain.KeyMfgSerial:
		b.identity.MfgSerial, err = domain.ParseHexUint32(value)
	case domain.KeyPassword:
		b.identity.Password, err = domain.ParseHexUint32(value)
	case domain.KeyMemory:
		var mem []byte
		if mem, err = domain.DecodeHexFixed(value, domain.MemoryLength); err == nil {
			copy(b.identity.Memory[:], mem)
			b.hasMemory = true
		}
	default:
		b.log.Debug("ignoring unknown identity field", "field", key)
	}
	if err != nil {
		return domain.ErrMalformedIdentity.WithDetails(key).WithCause(err)
	}
	return nil
}

// Build sizes, allocates and populates the convert table for the dumped
// algorithm and returns the finished record.
func (b *Builder) Build() (*domain.TokenRecord, error) {
	if !b.hasMemory {
		return nil, domain.ErrMalformedIdentity.WithDetails("memory image missing")
	}

	algorithm := domain.AlgorithmFromMemory(b.identity.Memory)
	section := algorithm.SectionName()

	candidates := b.candidates[strings.ToUpper(section)]
	count := len(candidates)
	b.log.Debug("found convert entries", "section", section, "count", count)

	if count == 0 {
		return nil, domain.ErrEmptyConvertTable.WithDetails("no entries in section " + section)
	}
	if count > MaxConvertEntries {
		return nil, domain.ErrAllocationFailure.WithDetails(
			fmt.Sprintf("%d entries exceed the limit of %d", count, MaxConvertEntries))
	}

	table := make([]domain.ConvertEntry, 0, count)
	skipped := 0
	for i, raw := range candidates {
		entry, err := decodeEntry(raw)
		if err != nil {
			skipped++
			b.log.Warn("skipping malformed convert entry",
				"section", section,
				"index", i,
				"request", raw.request,
				"error", err,
			)
			continue
		}
		table = append(table, entry)
	}

	if len(table) == 0 {
		return nil, domain.ErrEmptyConvertTable.WithDetails(
			fmt.Sprintf("all %d entries in section %s are malformed", count, section))
	}

	return domain.NewTokenRecord(b.identity, table, skipped, b.source), nil
}

func decodeEntry(raw rawEntry) (domain.ConvertEntry, error) {
	request, err := domain.DecodeHex(raw.request)
	if err != nil {
		return domain.ConvertEntry{}, domain.ErrMalformedEntry.WithDetails("request").WithCause(err)
	}
	response, err := domain.ParseHexUint32(raw.response)
	if err != nil {
		return domain.ConvertEntry{}, domain.ErrMalformedEntry.WithDetails("response").WithCause(err)
	}
	return domain.ConvertEntry{
		Request:    request,
		RequestLen: len(request),
		Response:   response,
	}, nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
