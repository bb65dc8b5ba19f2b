// Package service provides the challenge resolver of the MicroDog emulator.
//
// A Resolver answers challenges from the convert table of a loaded token
// record: the response of the first entry whose request has the same
// length and bytes as the challenge. Resolvers are read-only after
// construction and safe for concurrent use by any number of connections.
package service
