package session

import "time"

// Session defines a public type used by taskgate APIs.
//
// Session instances are produced per request by a [Resolver] and live for exactly one
// request; they are never persisted by the gate itself.
type Session struct {
	Subject string
	Email   string

	CreatedAt int64
	ExpiresAt int64
}

// Expired reports whether the session's expiry is at or before now. Sessions
// without an expiry (ExpiresAt == 0) never expire; only the weak cookie
// strategy produces them.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return s.ExpiresAt != 0 && s.ExpiresAt <= now.Unix()
}
