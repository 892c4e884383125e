package middleware

import (
	"context"
	"net"
	"net/http"

	taskgate "github.com/tasknest/taskgate"
	"github.com/tasknest/taskgate/session"
)

type sessionContextKey struct{}

// SessionFromContext returns the session resolved by a guard for this request.
// The second return is false on public routes and on weak-resolver requests
// where no session was attached.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*session.Session)
	return sess, ok && sess != nil
}

// Guard returns middleware that evaluates every request through the gate with
// the given resolver mode. Redirect decisions are answered with 302 Found and
// never reach the next handler.
func Guard(gate *taskgate.Gate, mode taskgate.ResolverMode) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate == nil {
				http.Error(w, taskgate.ErrGateNotReady.Error(), http.StatusServiceUnavailable)
				return
			}

			ctx := r.Context()
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				ctx = taskgate.WithClientIP(ctx, host)
			}
			if ua := r.UserAgent(); ua != "" {
				ctx = taskgate.WithUserAgent(ctx, ua)
			}

			decision := gate.EvaluateMode(ctx, r, mode)
			if decision.Kind != taskgate.DecisionAllow {
				http.Redirect(w, r, decision.Location, http.StatusFound)
				return
			}

			if decision.Session != nil {
				ctx = context.WithValue(ctx, sessionContextKey{}, decision.Session)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Protect returns middleware using the gate's configured resolver strategy.
func Protect(gate *taskgate.Gate) func(http.Handler) http.Handler {
	return Guard(gate, taskgate.ResolverInherit)
}
