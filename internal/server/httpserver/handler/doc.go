// Package handler implements the HTTP endpoints of the emulator.
//
//	GET  /health      liveness and table size
//	GET  /v1/token    identity summary of the emulated device
//	POST /v1/resolve  resolve a hex challenge
//
// Every JSON body uses the Response envelope. Errors carry their domain
// code both in the body and in the X-Error-Code header.
package handler
