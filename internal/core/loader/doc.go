// Package loader decodes a MicroDog device dump into a domain.TokenRecord.
//
// Loading is a single streaming pass over the dump's (section, key, value)
// triples. Identity fields from INFO are decoded as they arrive; entries of
// every CONVERT_* section are buffered as raw text, because the section
// that matters is named after the algorithm identifier and that identifier
// is only known once the memory image has been read. Build then sizes the
// convert table from the matching section, allocates it once, and decodes
// the entries into it.
//
// Malformed convert entries are dropped and counted; everything else that
// makes the record unusable is an error. MustLoad turns such errors into a
// process exit, which is the expected behavior at emulator startup.
package loader
