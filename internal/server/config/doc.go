// Package config defines the microdog-server configuration structure.
//
//   - spec.go: EmulatorConfig struct definition
//   - default.go: default values
//   - verify.go: validation of loaded values
//   - load.go: unmarshalling from a confloader.Loader
//
// Keys map to environment variables by replacing dots with underscores
// under the MICRODOG_ prefix, so keys themselves contain no underscores:
// server.http.addr is MICRODOG_SERVER_HTTP_ADDR.
package config
