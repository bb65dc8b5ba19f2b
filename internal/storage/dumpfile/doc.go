// Package dumpfile reads MicroDog device dumps.
//
// A dump is an INI file: one INFO section with the identity fields and one
// or more CONVERT_<algorithm> sections whose keys are hexadecimal requests
// and whose values are hexadecimal responses. The reader is built on
// gopkg.in/ini.v1 and reports the dump as an ordered stream of
// (section, key, value) triples, leaving all interpretation to the loader.
package dumpfile
