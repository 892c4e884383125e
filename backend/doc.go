// Package backend is the bridge between the session-cookie frontend and the
// bearer-token task API. Every call mints a fresh short-lived credential, attaches it
// as an Authorization header, and maps the response onto a closed outcome taxonomy
// (OK / Unauthorized / APIError / Unreachable) so page logic can degrade without
// crashing.
//
// # 401 policy
//
// How a call-site reacts to an Unauthorized outcome is a per-operation decision
// declared up front in [CallPolicies] — redirect to login, or degrade to a fallback
// view — never chosen ad hoc at the call-site and never both at once. A degraded read
// stays distinguishable from a genuinely empty result: the bridge never converts a
// failure into an empty OK payload.
//
// # What this package must NOT do
//
//   - Retry: at most one attempt per call.
//   - Cache list responses; reads request fresh data.
//   - Resolve sessions or make gate decisions.
package backend
