// Package domain defines the core domain models for the MicroDog emulator.
//
// Domain models are pure value objects without any IO dependencies or
// framework coupling. This package contains:
//
//   - TokenRecord: the decoded state of one dumped dongle
//   - ConvertEntry: a single request/response pair of the convert table
//   - AlgorithmID: the opaque selector naming the convert section
//   - Hex codec helpers shared by the loader and the endpoints
//   - Errors: domain-specific error definitions
//
// A TokenRecord is immutable once constructed. Every accessor returns a
// copy, so readers on different goroutines never need a lock.
package domain
