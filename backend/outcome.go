package backend

import "errors"

// OutcomeKind defines a public type used by taskgate APIs.
//
// OutcomeKind instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type OutcomeKind uint8

const (
	// OutcomeOK is an exported constant or variable used by the backend bridge.
	OutcomeOK OutcomeKind = iota
	// OutcomeUnauthorized is an exported constant or variable used by the backend bridge.
	OutcomeUnauthorized
	// OutcomeAPIError is an exported constant or variable used by the backend bridge.
	OutcomeAPIError
	// OutcomeUnreachable is an exported constant or variable used by the backend bridge.
	OutcomeUnreachable
)

// String describes the string operation and its observable behavior.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeAPIError:
		return "api_error"
	default:
		return "unreachable"
	}
}

// Outcome is the terminal result of one backend call. StatusCode is set for
// APIError outcomes; Err carries the underlying cause for Unreachable outcomes.
// Outcomes are consumed immediately by the caller and never persisted.
type Outcome struct {
	Kind       OutcomeKind
	StatusCode int
	Err        error
}

// OK reports whether the call succeeded with a 2xx response.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeOK
}

// ShouldRedirect reports whether the call-site's declared 401 policy requires a
// redirect to login for this outcome. For any Unauthorized outcome exactly one of
// redirect (true here) or degraded fallback (false here) applies — never both,
// never neither.
func (o Outcome) ShouldRedirect(p Policy401) bool {
	return o.Kind == OutcomeUnauthorized && p == Policy401Redirect
}

// Policy401 declares how a call-site reacts to an Unauthorized backend outcome.
type Policy401 uint8

const (
	// Policy401Redirect sends the user to the login flow. Used on mutation paths
	// where silently dropping the action would lose user input.
	Policy401Redirect Policy401 = iota
	// Policy401Degrade falls back to a degraded view instead of hard-failing the
	// page. Used on the dashboard read path; the fallback must stay visually
	// distinguishable from an empty result.
	Policy401Degrade
)

// CallPolicies pins the 401 policy of every bridge operation at configuration
// time so call-sites cannot mix behaviors ad hoc.
type CallPolicies struct {
	List   Policy401
	Get    Policy401
	Create Policy401
	Update Policy401
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
func (cp CallPolicies) Validate() error {
	for _, p := range []Policy401{cp.List, cp.Get, cp.Create, cp.Update} {
		switch p {
		case Policy401Redirect, Policy401Degrade:
			// valid
		default:
			return errors.New("invalid 401 policy")
		}
	}
	return nil
}
