package taskgate

import (
	"errors"
	"testing"
)

func TestBuilderRequiresSigningKey(t *testing.T) {
	cfg := validTestConfig()
	cfg.Token.SigningKey = nil

	_, err := New().WithConfig(cfg).WithResolver(&fakeResolver{}).Build()
	if !errors.Is(err, ErrSigningKeyMissing) {
		t.Fatalf("expected ErrSigningKeyMissing, got %v", err)
	}
}

func TestBuilderStoreModeRequiresRedisOrResolver(t *testing.T) {
	cfg := validTestConfig()

	_, err := New().WithConfig(cfg).Build()
	if err == nil {
		t.Fatal("expected build to fail without redis or resolver in store mode")
	}

	if _, err := New().WithConfig(cfg).WithResolver(&fakeResolver{}).Build(); err != nil {
		t.Fatalf("custom resolver should satisfy store mode, got %v", err)
	}

	cfg.Session.Mode = ResolverCookie
	if _, err := New().WithConfig(cfg).Build(); err != nil {
		t.Fatalf("cookie mode should not need redis, got %v", err)
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithConfig(validTestConfig()).WithResolver(&fakeResolver{})

	if _, err := b.Build(); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected second build to fail")
	}
}

func TestBuilderSettersOverrideConfig(t *testing.T) {
	gate, err := New().
		WithConfig(defaultConfig()).
		WithSigningKey([]byte("builder-key")).
		WithBackendBaseURL("http://tasks.internal:8081").
		WithResolver(&fakeResolver{}).
		WithMetricsEnabled(true).
		WithLatencyHistograms(true).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer gate.Close()

	got := gate.Config()
	if string(got.Token.SigningKey) != "builder-key" {
		t.Fatal("signing key setter not applied")
	}
	if got.Backend.BaseURL != "http://tasks.internal:8081" {
		t.Fatal("backend base URL setter not applied")
	}
	if !got.Metrics.Enabled || !got.Metrics.EnableLatencyHistograms {
		t.Fatal("metrics setters not applied")
	}
}

func TestBuilderConfigCloneIsolation(t *testing.T) {
	cfg := validTestConfig()
	b := New().WithConfig(cfg)

	// Mutating the caller's config after WithConfig must not leak into the build.
	cfg.Token.SigningKey[0] ^= 0xff
	cfg.Routes.LoginPath = "/mutated"

	gate, err := b.WithResolver(&fakeResolver{}).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer gate.Close()

	if gate.Config().Routes.LoginPath != "/login" {
		t.Fatal("builder shares config memory with caller")
	}
}
