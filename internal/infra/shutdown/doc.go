// Package shutdown coordinates graceful termination of the emulator.
//
// Components register named hooks with OnShutdown. Wait blocks until
// SIGINT, SIGTERM or cancellation of its context, then runs the hooks in
// reverse registration order under a shared deadline.
package shutdown
