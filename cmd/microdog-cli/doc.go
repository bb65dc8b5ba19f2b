// Package main provides the entry point for microdog-cli.
//
// Usage:
//
//	microdog-cli inspect --dump ./io.microdog.ini
//	microdog-cli -o json inspect --entries
//	microdog-cli resolve --dump ./io.microdog.ini 0A1B2C
//	microdog-cli query --socket /var/run/microdog/microdog.sock 0A1B2C
//	microdog-cli query --http 127.0.0.1:5090 0A1B2C
package main
