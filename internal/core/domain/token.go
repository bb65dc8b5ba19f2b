package domain

import (
	"fmt"
	"strings"
)

// Dump layout constants.
const (
	// IDLength is the length of the device unique identifier in bytes.
	IDLength = 8

	// MemoryLength is the length of the dumped memory image in bytes.
	MemoryLength = 200

	// AlgorithmOffset is where the algorithm identifier starts in the image.
	AlgorithmOffset = MemoryLength - AlgorithmLength

	// AlgorithmLength is the length of the algorithm identifier in bytes.
	AlgorithmLength = 4

	// InfoSection is the dump section holding the identity fields.
	InfoSection = "INFO"

	// ConvertSectionPrefix prefixes the name of every convert table section.
	ConvertSectionPrefix = "CONVERT_"
)

// Keys recognized in the INFO section.
const (
	KeySerial    = "serial"
	KeyID        = "id"
	KeyMfgSerial = "mfg_serial"
	KeyPassword  = "password"
	KeyMemory    = "memory"
)

// AlgorithmID identifies the proprietary response algorithm of a device.
// It is an opaque selector: only its byte pattern and section name matter.
type AlgorithmID [AlgorithmLength]byte

// AlgorithmFromMemory returns the algorithm identifier stored at the tail
// of a memory image.
func AlgorithmFromMemory(memory [MemoryLength]byte) AlgorithmID {
	var a AlgorithmID
	copy(a[:], memory[AlgorithmOffset:])
	return a
}

// String renders the identifier as 8 uppercase hex digits in memory order.
func (a AlgorithmID) String() string {
	return EncodeHex(a[:])
}

// SectionName returns the dump section holding this algorithm's table.
func (a AlgorithmID) SectionName() string {
	return ConvertSectionPrefix + a.String()
}

// MatchesSection reports whether a dump section name selects this algorithm.
// Section names are compared case-insensitively.
func (a AlgorithmID) MatchesSection(section string) bool {
	return strings.EqualFold(section, a.SectionName())
}

// ConvertEntry is one request/response pair of the convert table.
type ConvertEntry struct {
	// Request is the challenge bytes (the lookup key).
	Request []byte

	// RequestLen is len(Request), i.e. half the length of its source text.
	RequestLen int

	// Response is the value the device answers with.
	Response uint32
}

// Clone returns a deep copy of the entry.
func (e ConvertEntry) Clone() ConvertEntry {
	req := make([]byte, len(e.Request))
	copy(req, e.Request)
	return ConvertEntry{Request: req, RequestLen: e.RequestLen, Response: e.Response}
}

// Identity holds the decoded INFO fields of a dump.
type Identity struct {
	Serial    uint32
	ID        [IDLength]byte
	MfgSerial uint32
	Password  uint32
	Memory    [MemoryLength]byte
}

// TokenRecord is the decoded state of one dumped dongle.
//
// A TokenRecord is built once by the loader and never mutated afterwards.
type TokenRecord struct {
	identity  Identity
	algorithm AlgorithmID
	table     []ConvertEntry
	skipped   int
	source    string
}

// NewTokenRecord creates a record from a decoded identity and a convert table.
//
// The record takes ownership of table; the caller must not modify it
// afterwards. The algorithm identifier is derived from identity.Memory.
func NewTokenRecord(identity Identity, table []ConvertEntry, skipped int, source string) *TokenRecord {
	return &TokenRecord{
		identity:  identity,
		algorithm: AlgorithmFromMemory(identity.Memory),
		table:     table[:len(table):len(table)],
		skipped:   skipped,
		source:    source,
	}
}

// Serial returns the device serial number.
func (r *TokenRecord) Serial() uint32 { return r.identity.Serial }

// ID returns the device unique identifier.
func (r *TokenRecord) ID() [IDLength]byte { return r.identity.ID }

// MfgSerial returns the manufacturer serial number.
func (r *TokenRecord) MfgSerial() uint32 { return r.identity.MfgSerial }

// Password returns the device access password.
func (r *TokenRecord) Password() uint32 { return r.identity.Password }

// Memory returns a copy of the dumped memory image.
func (r *TokenRecord) Memory() [MemoryLength]byte { return r.identity.Memory }

// Algorithm returns the algorithm identifier.
func (r *TokenRecord) Algorithm() AlgorithmID { return r.algorithm }

// Len returns the number of convert entries.
func (r *TokenRecord) Len() int { return len(r.table) }

// Skipped returns how many counted convert entries were dropped as malformed.
func (r *TokenRecord) Skipped() int { return r.skipped }

// Source returns the path the record was loaded from.
func (r *TokenRecord) Source() string { return r.source }

// Entry returns a copy of the i-th convert entry in load order.
func (r *TokenRecord) Entry(i int) ConvertEntry {
	return r.table[i].Clone()
}

// Entries returns a deep copy of the convert table in load order.
func (r *TokenRecord) Entries() []ConvertEntry {
	out := make([]ConvertEntry, len(r.table))
	for i, e := range r.table {
		out[i] = e.Clone()
	}
	return out
}

// Summary is the printable view of a record. The password is omitted.
type Summary struct {
	Serial         string `json:"serial" yaml:"serial"`
	ID             string `json:"id" yaml:"id"`
	MfgSerial      string `json:"mfg_serial" yaml:"mfg_serial"`
	Algorithm      string `json:"algorithm" yaml:"algorithm"`
	Memory         string `json:"memory" yaml:"memory" table:"wide"`
	ConvertEntries int    `json:"convert_entries" yaml:"convert_entries"`
	Skipped        int    `json:"skipped" yaml:"skipped"`
	Source         string `json:"source" yaml:"source"`
}

// Summary returns the printable view of the record.
func (r *TokenRecord) Summary() Summary {
	return Summary{
		Serial:         fmt.Sprintf("%04X", r.identity.Serial),
		ID:             EncodeHex(r.identity.ID[:]),
		MfgSerial:      fmt.Sprintf("%04X", r.identity.MfgSerial),
		Algorithm:      r.algorithm.String(),
		Memory:         EncodeHex(r.identity.Memory[:]),
		ConvertEntries: len(r.table),
		Skipped:        r.skipped,
		Source:         r.source,
	}
}
