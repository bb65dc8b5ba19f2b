// Package main provides the entry point for microdog-server.
//
// The server loads one MicroDog dump at startup, then answers convert
// challenges until SIGINT or SIGTERM:
//
//   - local Unix socket line protocol for the emulated driver
//   - optional HTTP API with /health, /v1/token, /v1/resolve and /metrics
//
// Usage:
//
//	microdog-server [-config microdog.yaml] [-dump ./io.microdog.ini]
//
// A dump that cannot be loaded terminates the process with status 1.
package main
