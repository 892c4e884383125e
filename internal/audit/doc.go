// Package audit defines the gate's audit event model, delivery sinks, and the
// asynchronous dispatcher that decouples request handling from sink latency.
package audit
