package flows

import "net/url"

// DecisionKind classifies gate outcomes for root-level mapping.
type DecisionKind int

const (
	DecisionAllow DecisionKind = iota
	DecisionRedirectToLogin
	DecisionRedirectToDashboard
)

// Decision is the terminal outcome of one gate evaluation. Location is set only
// for redirect kinds.
type Decision struct {
	Kind     DecisionKind
	Location string
}

// DecideConfig allows the host package to pass its route-class enum values and
// redirect targets without this package importing host-specific types (avoids
// import cycles).
type DecideConfig struct {
	ClassProtected int
	ClassAuthOnly  int
	LoginPath      string
	DashboardPath  string
	RedirectParam  string
}

// Decide combines a route class with session presence into a gate decision.
// It is pure, total, and idempotent: identical inputs always yield identical
// outputs, and exactly one rule applies per evaluation:
//
//  1. protected route without a session  -> redirect to login, carrying the
//     original path in the redirect parameter;
//  2. auth-only route with a session     -> redirect to the dashboard;
//  3. anything else                      -> allow.
func Decide(class int, authenticated bool, path string, cfg DecideConfig) Decision {
	switch {
	case class == cfg.ClassProtected && !authenticated:
		q := url.Values{}
		q.Set(cfg.RedirectParam, path)
		return Decision{
			Kind:     DecisionRedirectToLogin,
			Location: cfg.LoginPath + "?" + q.Encode(),
		}
	case class == cfg.ClassAuthOnly && authenticated:
		return Decision{
			Kind:     DecisionRedirectToDashboard,
			Location: cfg.DashboardPath,
		}
	default:
		return Decision{Kind: DecisionAllow}
	}
}
