// Package prometheus provides Prometheus collectors for taskgate metrics.
//
// [NewPrometheusExporter] accepts a [taskgate.Gate] and exposes an [http.Handler]
// that renders all taskgate counters and histograms in Prometheus text exposition
// format. Counter names are prefixed taskgate_*_total; the single histogram is
// taskgate_evaluate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate gate state.
package prometheus
