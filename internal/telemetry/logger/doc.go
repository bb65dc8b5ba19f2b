// Package logger provides structured logging for the MicroDog emulator.
//
// The package wraps log/slog:
//
//   - logger.go: Logger interface, handler construction, dynamic level
//   - context.go: Context-aware logging with request and connection IDs
//   - redact.go: Redaction of device secrets (password and friends)
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering, adjustable at runtime
//   - Automatic masking of sensitive attributes
//   - Context propagation for request tracing
package logger
