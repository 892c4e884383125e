// Package taskgate provides the request-time authentication gate and credential bridge
// for a session-cookie frontend that talks to a bearer-token task API.
//
// Every inbound request is classified (public / protected / auth-only), its session is
// resolved (cookie presence or a verified Redis lookup), and a pure decision engine
// produces Allow or a redirect before any page logic runs. Allowed page logic can then
// mint a short-lived signed bearer credential and call the task backend through the
// bridge in [github.com/tasknest/taskgate/backend].
//
// The package is designed for concurrent server workloads: Gate methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// taskgate is the public surface. It exposes [Gate], [Builder], [Config], and value types
// (Decision, RouteRule, MetricsSnapshot, etc.). Flow orchestration, audit dispatch, and
// metric counters live under internal/ and are never exported directly.
//
// # What this package must NOT do
//
//   - Render pages or own any UI state; it decides, the caller redirects or renders.
//   - Implement the identity provider or task persistence; both are collaborators.
//   - Fail open: any ambiguity in session resolution is treated as unauthenticated.
//
// # Performance contract
//
// Evaluate is the hot path. Public routes complete without any I/O; protected and
// auth-only routes perform at most one session-store round-trip (none in cookie mode).
package taskgate
