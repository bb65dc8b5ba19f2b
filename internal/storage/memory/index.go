package memory

import (
	"bytes"

	"github.com/spaolacci/murmur3"

	"github.com/yndnr/microdog-go/internal/core/domain"
)

// ConvertIndex answers exact-match lookups over a convert table.
type ConvertIndex struct {
	entries []domain.ConvertEntry
	buckets map[uint32][]int
}

// NewConvertIndex indexes the convert table of rec.
func NewConvertIndex(rec *domain.TokenRecord) *ConvertIndex {
	return NewConvertIndexFromEntries(rec.Entries())
}

// NewConvertIndexFromEntries indexes entries, which must not be modified
// afterwards.
func NewConvertIndexFromEntries(entries []domain.ConvertEntry) *ConvertIndex {
	idx := &ConvertIndex{
		entries: entries,
		buckets: make(map[uint32][]int, len(entries)),
	}
	for i, e := range entries {
		h := hashRequest(e.Request)
		idx.buckets[h] = append(idx.buckets[h], i)
	}
	return idx
}

// Lookup returns the position and response of the first entry matching
// request, or ok=false when there is none.
func (idx *ConvertIndex) Lookup(request []byte) (pos int, response uint32, ok bool) {
	for _, i := range idx.buckets[hashRequest(request)] {
		e := &idx.entries[i]
		if e.RequestLen == len(request) && bytes.Equal(e.Request, request) {
			return i, e.Response, true
		}
	}
	return -1, 0, false
}

// Len returns the number of indexed entries.
func (idx *ConvertIndex) Len() int {
	return len(idx.entries)
}

// Buckets returns the number of distinct request hashes.
func (idx *ConvertIndex) Buckets() int {
	return len(idx.buckets)
}

// Scan is the reference lookup: a front-to-back walk of entries.
func Scan(entries []domain.ConvertEntry, request []byte) (pos int, response uint32, ok bool) {
	for i := range entries {
		e := &entries[i]
		if e.RequestLen == len(request) && bytes.Equal(e.Request, request) {
			return i, e.Response, true
		}
	}
	return -1, 0, false
}

func hashRequest(b []byte) uint32 {
	return murmur3.Sum32(b)
}
