package middleware

import (
	"net/http"

	taskgate "github.com/tasknest/taskgate"
)

// ProtectVerified returns middleware that overrides the resolver strategy to
// [taskgate.ResolverStore] for the wrapped handler, so every request is checked
// against the session store.
func ProtectVerified(gate *taskgate.Gate) func(http.Handler) http.Handler {
	return Guard(gate, taskgate.ResolverStore)
}
