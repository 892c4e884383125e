package middleware

import (
	"net/http"

	taskgate "github.com/tasknest/taskgate"
)

// ProtectCookieOnly returns middleware that overrides the resolver strategy to
// [taskgate.ResolverCookie] for the wrapped handler, skipping Redis entirely.
// Sessions it admits carry no subject, so handlers behind it cannot rely on
// [SessionFromContext] for identity.
func ProtectCookieOnly(gate *taskgate.Gate) func(http.Handler) http.Handler {
	return Guard(gate, taskgate.ResolverCookie)
}
