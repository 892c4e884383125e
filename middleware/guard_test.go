package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	taskgate "github.com/tasknest/taskgate"
	"github.com/tasknest/taskgate/session"
)

type staticResolver struct {
	sess *session.Session
}

func (s *staticResolver) Resolve(context.Context, *http.Request) (*session.Session, error) {
	return s.sess, nil
}

func buildGate(t *testing.T, resolver session.Resolver) *taskgate.Gate {
	t.Helper()

	cfg := taskgate.DefaultConfig()
	cfg.Token.SigningKey = []byte("middleware-test-key")
	cfg.Backend.BaseURL = "http://127.0.0.1:1"

	gate, err := taskgate.New().WithConfig(cfg).WithResolver(resolver).Build()
	if err != nil {
		t.Fatalf("build gate: %v", err)
	}
	t.Cleanup(gate.Close)
	return gate
}

func serve(t *testing.T, mw func(http.Handler) http.Handler, path, cookie string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reached := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "203.0.113.5:51000"
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "tasknest.session_token", Value: cookie})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, reached
}

func TestProtectRedirectsUnauthenticated(t *testing.T) {
	gate := buildGate(t, &staticResolver{})

	rec, reached := serve(t, Protect(gate), "/dashboard", "")
	if reached {
		t.Fatal("handler must not run on redirect")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/login?redirect=%2Fdashboard" {
		t.Fatalf("location = %q", got)
	}
}

func TestProtectAllowsAuthenticatedAndInjectsSession(t *testing.T) {
	resolver := &staticResolver{sess: &session.Session{Subject: "user-9", Email: "d@example.com"}}
	gate := buildGate(t, resolver)

	var got *session.Session
	handler := Protect(gate)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "tasknest.session_token", Value: "sid"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil || got.Subject != "user-9" {
		t.Fatalf("session in context = %+v", got)
	}
}

func TestProtectRedirectsAuthOnlyToDashboard(t *testing.T) {
	gate := buildGate(t, &staticResolver{sess: &session.Session{Subject: "user-1"}})

	rec, reached := serve(t, Protect(gate), "/login", "sid")
	if reached {
		t.Fatal("handler must not run on redirect")
	}
	if got := rec.Header().Get("Location"); got != "/dashboard" {
		t.Fatalf("location = %q", got)
	}
}

func TestProtectPassesPublicRoutes(t *testing.T) {
	gate := buildGate(t, &staticResolver{})

	rec, reached := serve(t, Protect(gate), "/about", "")
	if !reached {
		t.Fatal("public route must reach the handler")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestProtectCookieOnlySkipsStore(t *testing.T) {
	// The strong resolver would reject everything; cookie-only mode never asks it.
	gate := buildGate(t, &staticResolver{})

	_, reached := serve(t, ProtectCookieOnly(gate), "/dashboard", "opaque-value")
	if !reached {
		t.Fatal("cookie-only mode should admit any non-empty cookie")
	}

	rec, reached := serve(t, ProtectCookieOnly(gate), "/dashboard", "")
	if reached {
		t.Fatal("cookie-only mode must still redirect without a cookie")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
}

func TestProtectVerifiedUsesStore(t *testing.T) {
	gate := buildGate(t, &staticResolver{sess: &session.Session{Subject: "user-1"}})

	_, reached := serve(t, ProtectVerified(gate), "/dashboard", "sid")
	if !reached {
		t.Fatal("verified mode should admit store-resolved sessions")
	}
}

func TestGuardNilGateFailsClosed(t *testing.T) {
	rec, reached := serve(t, Protect(nil), "/dashboard", "sid")
	if reached {
		t.Fatal("nil gate must not admit requests")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
