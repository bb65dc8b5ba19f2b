// Package connection provides the microdog-cli clients for a running
// microdog-server.
//
//   - socket.go: line protocol client over the local Unix socket
//   - http.go: JSON API client
//
// Both return *ServerError for replies that carry an MD-* error code.
package connection
