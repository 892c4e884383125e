// Package middleware exposes HTTP middleware adapters for cookie-only and
// store-verified gate enforcement built on top of taskgate.Gate evaluation.
//
// # Guards
//
//   - [Protect] — auto-selects the resolver strategy from Gate config.
//   - [ProtectCookieOnly] — weak cookie-presence check, no Redis call.
//   - [ProtectVerified] — store-verified sessions on every request.
//
// Each guard evaluates the request through the gate, issues the redirect the
// decision names, or injects the resolved session into the request context and
// calls the next handler.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Gate calls. It does NOT implement
// gate logic itself — all decisions are delegated to Gate.EvaluateMode.
//
// # What this package must NOT do
//
//   - Classify routes or inspect cookies directly (delegates to Gate).
//   - Access Redis (Gate handles I/O).
//   - Make decisions beyond issuing the redirect Gate.EvaluateMode returns.
package middleware
