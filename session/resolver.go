package session

import (
	"context"
	"net/http"
)

// Resolver maps an incoming request to a resolved session or to unauthenticated.
//
// A nil session with a nil error means the request is unauthenticated. A non-nil
// error reports an infrastructure failure during resolution; callers must treat
// it as unauthenticated (fail closed), never as allow-by-default.
type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (*Session, error)
}

// CookieResolver is the weak strategy: any non-empty value of the named cookie is
// treated as authenticated. No cryptographic or expiry check is performed, so the
// returned session carries no subject or email — pages that need the caller's
// identity must run behind a [StoreResolver].
type CookieResolver struct {
	CookieName string
}

// Resolve describes the resolve operation and its observable behavior.
//
// Resolve does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *CookieResolver) Resolve(_ context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(c.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	return &Session{}, nil
}
