package dumpfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/ini.v1"
)

// ErrStop may be returned by a ScanFunc to end a scan early without error.
var ErrStop = errors.New("dumpfile: stop scan")

// ScanFunc is called once per key/value pair, tagged with its section.
type ScanFunc func(section, key, value string) error

// Reader streams the triples of one dump.
type Reader struct {
	file  *ini.File
	order map[string][]occurrence
	name  string
}

// occurrence is one key line of a section, in file order.
type occurrence struct {
	key   string
	empty bool
}

// loadOptions keeps every duplicate key line, repeated values included.
// Continuation lines are off so that each key line holds exactly one value.
var loadOptions = ini.LoadOptions{
	AllowShadows:               true,
	AllowDuplicateShadowValues: true,
	IgnoreContinuation:         true,
}

const keyValueDelimiters = "=:"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Open parses the dump at path.
func Open(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Parse parses a dump held in memory. name is used in error messages only.
func Parse(name string, data []byte) (*Reader, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("parse dump %s: %w", name, err)
	}
	return &Reader{file: f, order: indexKeys(data), name: name}, nil
}

// Name returns the path or name the dump was read from.
func (r *Reader) Name() string {
	return r.name
}

// Scan calls fn for every key line in file order, once per line, so a
// request repeated with the same or another value is reported each time.
// Sections repeated in the file are reported once, at their first
// position, with their keys merged. Scan stops at the first error returned
// by fn; ErrStop ends the scan and is not reported.
func (r *Reader) Scan(fn ScanFunc) error {
	for _, sec := range r.file.Sections() {
		if err := r.scanSection(sec, fn); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// scanSection replays the section's key lines against the values ini.v1
// collected per key. ini.v1 groups shadow values under the first
// occurrence of a key and omits empty ones, so the line index restores the
// interleaving and the empty values.
func (r *Reader) scanSection(sec *ini.Section, fn ScanFunc) error {
	keys := sec.Keys()
	pending := make(map[string][]string, len(keys))
	for _, key := range keys {
		pending[key.Name()] = key.ValueWithShadows()
	}

	seen := make(map[string]bool, len(keys))
	for _, occ := range r.order[sec.Name()] {
		values, ok := pending[occ.key]
		if !ok {
			continue
		}
		seen[occ.key] = true
		if occ.empty {
			if err := fn(sec.Name(), occ.key, ""); err != nil {
				return err
			}
			continue
		}
		if len(values) == 0 {
			continue
		}
		if err := fn(sec.Name(), occ.key, values[0]); err != nil {
			return err
		}
		pending[occ.key] = values[1:]
	}

	// Values the line index could not place keep ini.v1's order.
	for _, key := range keys {
		values := pending[key.Name()]
		if !seen[key.Name()] && len(values) == 0 {
			values = []string{key.Value()}
		}
		for _, value := range values {
			if err := fn(sec.Name(), key.Name(), value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Sections returns the section names of the dump in file order,
// excluding the implicit default section when it is empty.
func (r *Reader) Sections() []string {
	names := make([]string, 0, len(r.file.Sections()))
	for _, sec := range r.file.Sections() {
		if sec.Name() == ini.DefaultSection && len(sec.Keys()) == 0 {
			continue
		}
		names = append(names, sec.Name())
	}
	return names
}

// indexKeys lists the key lines of every section in file order, using the
// same section, comment and key-name rules as ini.v1.
func indexKeys(data []byte) map[string][]occurrence {
	data = bytes.TrimPrefix(data, utf8BOM)
	order := make(map[string][]occurrence)
	section := ini.DefaultSection

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimLeftFunc(raw, unicode.IsSpace)
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if line[0] == '[' {
			if end := strings.LastIndexByte(line, ']'); end > 0 {
				section = line[1:end]
			}
			continue
		}

		key, value, ok := splitKeyLine(line)
		if !ok {
			continue
		}
		order[section] = append(order[section], occurrence{key: key, empty: isEmptyValue(value)})
	}
	return order
}

func splitKeyLine(line string) (key, value string, ok bool) {
	if q := line[0]; q == '"' || q == '`' {
		end := strings.IndexByte(line[1:], q)
		if end < 0 {
			return "", "", false
		}
		rest := line[end+2:]
		i := strings.IndexAny(rest, keyValueDelimiters)
		if i < 0 {
			return "", "", false
		}
		return strings.TrimSpace(line[1 : end+1]), rest[i+1:], true
	}

	i := strings.IndexAny(line, keyValueDelimiters)
	if i <= 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), line[i+1:], true
}

// isEmptyValue reports whether ini.v1 reads value as empty: blank, a bare
// inline comment, or an empty quoted string.
func isEmptyValue(value string) bool {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(v, "`") && !strings.HasPrefix(v, `"""`) {
		if i := strings.IndexAny(v, "#;"); i >= 0 {
			v = strings.TrimSpace(v[:i])
		}
	}
	switch v {
	case "", `""`, "''", "``":
		return true
	}
	return false
}
