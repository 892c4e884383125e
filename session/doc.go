// Package session resolves inbound requests to authenticated sessions. It provides the
// [Resolver] interface with two interchangeable strategies — cookie-presence (weak) and
// Redis-backed verified lookup (strong) — plus the [Store] that persists sessions in a
// compact binary encoding.
//
// # Strategies
//
//   - [CookieResolver] — presence of a non-empty named cookie is treated as
//     authenticated. No signature or expiry check is performed at this layer; the
//     returned session carries no identity. Weak by design, cheap by design.
//   - [StoreResolver] — the cookie value is a session ID looked up and verified in
//     Redis. Expired or missing sessions resolve to unauthenticated; store failures
//     resolve to unauthenticated with the error surfaced (fail closed).
//
// # Architecture boundaries
//
// This package owns the [Store] (Redis operations) and the [Session] model. It does NOT
// classify routes, make gate decisions, or mint credentials — those responsibilities
// belong to the Gate.
//
// # What this package must NOT do
//
//   - Import taskgate, token, or backend (no upward imports).
//   - Treat any resolver error as authenticated.
//   - Store credentials or secrets in [Session] fields.
package session
