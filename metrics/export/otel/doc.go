// Package otel provides OpenTelemetry metric exporter bindings for taskgate
// counters and histograms.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each taskgate
// metric and Int64ObservableGauge per histogram bucket. A single callback reads
// [taskgate.Gate.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate gate state.
package otel
