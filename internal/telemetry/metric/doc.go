// Package metric provides Prometheus metrics for the MicroDog emulator.
//
//   - prometheus.go: registry of emulator metrics and the /metrics handler
//   - collector.go: collector exposing the loaded token record
//
// Metrics include resolve hit/miss counters, request latency histograms,
// connection gauges and the size of the loaded convert table.
package metric
