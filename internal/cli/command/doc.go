// Package command defines the microdog-cli commands using urfave/cli/v2.
//
//   - root.go: App, global flags and shared helpers
//   - inspect.go: print a dump's identity or convert table
//   - resolve.go: answer challenges offline from a dump
//   - query.go: ask a running server over the socket or HTTP
//   - version.go: build information
//
// Commands write results to App.Writer so tests can capture them.
package command
