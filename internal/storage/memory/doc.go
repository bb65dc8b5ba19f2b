// Package memory holds the in-memory lookup structures built from a loaded
// token record.
//
// ConvertIndex buckets convert table entries by a murmur3 hash of their
// request bytes. Each bucket keeps entry positions in load order, so a
// lookup returns the same entry a front-to-back scan of the table would:
// the first entry whose length and bytes both match.
//
// An index is immutable after construction and safe for concurrent reads.
package memory
