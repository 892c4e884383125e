package taskgate

import (
	"errors"
	"fmt"
	"strings"
)

// RouteClass is the access-control category assigned to a request path.
//
//	RoutePublic    — reachable with or without a session.
//	RouteProtected — requires a session; otherwise redirect to login.
//	RouteAuthOnly  — login/signup pages; sessions are redirected to the dashboard.
type RouteClass uint8

const (
	// RoutePublic is an exported constant or variable used by the authentication gate.
	RoutePublic RouteClass = iota
	// RouteProtected is an exported constant or variable used by the authentication gate.
	RouteProtected
	// RouteAuthOnly is an exported constant or variable used by the authentication gate.
	RouteAuthOnly
)

// String describes the string operation and its observable behavior.
func (c RouteClass) String() string {
	switch c {
	case RouteProtected:
		return "protected"
	case RouteAuthOnly:
		return "auth_only"
	default:
		return "public"
	}
}

// RouteRule binds a path prefix to a [RouteClass]. Rules are evaluated in
// declaration order with first-match-wins semantics.
type RouteRule struct {
	Prefix string
	Class  RouteClass
}

// classifier maps request paths to route classes using a single declarative
// rule table so the protected and auth-only gating policies cannot drift apart.
type classifier struct {
	rules []RouteRule
}

func newClassifier(rules []RouteRule) *classifier {
	out := make([]RouteRule, len(rules))
	copy(out, rules)
	return &classifier{rules: out}
}

// Classify returns the route class for path. It is deterministic, total, and
// side-effect-free: the first rule whose prefix matches wins, and a path that
// matches no rule is public.
func (c *classifier) Classify(path string) RouteClass {
	for _, rule := range c.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule.Class
		}
	}
	return RoutePublic
}

func validateRules(rules []RouteRule) error {
	for i, rule := range rules {
		if rule.Prefix == "" || !strings.HasPrefix(rule.Prefix, "/") {
			return fmt.Errorf("Routes rule %d: prefix must start with /", i)
		}
		switch rule.Class {
		case RoutePublic, RouteProtected, RouteAuthOnly:
			// valid
		default:
			return fmt.Errorf("Routes rule %d: invalid route class", i)
		}
	}

	// Protected and auth-only prefix sets must be disjoint. With first-match-wins
	// an overlap would silently favor whichever rule was listed first, so it is a
	// configuration error rather than a precedence question.
	for _, p := range rules {
		if p.Class != RouteProtected {
			continue
		}
		for _, a := range rules {
			if a.Class != RouteAuthOnly {
				continue
			}
			if strings.HasPrefix(p.Prefix, a.Prefix) || strings.HasPrefix(a.Prefix, p.Prefix) {
				return errors.New("Routes protected and auth-only prefixes overlap: " + p.Prefix + " vs " + a.Prefix)
			}
		}
	}

	return nil
}
