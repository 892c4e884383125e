// Package internaldefs holds the metric name tables and histogram bucket
// boundaries shared by the exporter packages.
//
// The Prometheus and OTel exporters must publish identical names and bucket
// layouts for the same core metrics; keeping the definitions in one place is
// what guarantees that. Editing a definition here changes every exporter at
// once.
//
// # What this package must NOT do
//
//   - Import an exporter package.
//   - Perform I/O.
package internaldefs
