package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		SigningKey: []byte("0123456789abcdef0123456789abcdef"),
		TTL:        time.Hour,
	}
}

func TestNewMinterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantOK: true},
		{name: "empty key", mutate: func(c *Config) { c.SigningKey = nil }},
		{name: "zero ttl", mutate: func(c *Config) { c.TTL = 0 }},
		{name: "negative leeway", mutate: func(c *Config) { c.Leeway = -time.Second }},
		{name: "leeway cap", mutate: func(c *Config) { c.Leeway = 3 * time.Minute }},
		{name: "leeway at cap", mutate: func(c *Config) { c.Leeway = 2 * time.Minute }, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := NewMinter(cfg)
			if tt.wantOK && err != nil {
				t.Fatalf("expected minter, got %v", err)
			}
			if !tt.wantOK && err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestNewMinterEmptyKeyIsSentinel(t *testing.T) {
	cfg := testConfig()
	cfg.SigningKey = []byte{}
	if _, err := NewMinter(cfg); !errors.Is(err, ErrSigningKeyMissing) {
		t.Fatalf("expected ErrSigningKeyMissing, got %v", err)
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	m, err := NewMinter(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	tok, err := m.Mint("user-7", "bob@example.com")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if strings.Count(tok, ".") != 2 {
		t.Fatalf("expected compact JWS, got %q", tok)
	}

	claims, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-7" {
		t.Fatalf("subject = %q, want user-7", claims.Subject)
	}
	if claims.Email != "bob@example.com" {
		t.Fatalf("email = %q, want bob@example.com", claims.Email)
	}
	if claims.ID == "" {
		t.Fatal("expected non-empty jti")
	}

	got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	if got != time.Hour {
		t.Fatalf("exp-iat = %v, want exactly 1h", got)
	}
}

func TestMintRequiresSubject(t *testing.T) {
	m, err := NewMinter(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Mint("", "a@example.com"); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

func TestMintUniqueJTI(t *testing.T) {
	m, err := NewMinter(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		tok, err := m.Mint("user-1", "")
		if err != nil {
			t.Fatal(err)
		}
		claims, err := m.Parse(tok)
		if err != nil {
			t.Fatal(err)
		}
		if seen[claims.ID] {
			t.Fatalf("jti %q reused", claims.ID)
		}
		seen[claims.ID] = true
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	m1, _ := NewMinter(testConfig())

	cfg := testConfig()
	cfg.SigningKey = []byte("another-key-entirely-0123456789ab")
	m2, _ := NewMinter(cfg)

	tok, err := m1.Mint("user-1", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m2.Parse(tok); err == nil {
		t.Fatal("expected signature verification failure")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	cfg := testConfig()
	cfg.TTL = time.Millisecond
	m, _ := NewMinter(cfg)

	tok, err := m.Mint("user-1", "")
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := m.Parse(tok); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseIssuerAudienceBinding(t *testing.T) {
	cfg := testConfig()
	cfg.Issuer = "taskgate"
	cfg.Audience = "task-api"
	m, _ := NewMinter(cfg)

	tok, err := m.Mint("user-1", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Parse(tok); err != nil {
		t.Fatalf("parse with matching iss/aud: %v", err)
	}

	other := testConfig()
	other.Issuer = "someone-else"
	m2, _ := NewMinter(other)
	if _, err := m2.Parse(tok); err == nil {
		t.Fatal("expected issuer mismatch to be rejected")
	}
}

func TestMinterCopiesKey(t *testing.T) {
	cfg := testConfig()
	m, _ := NewMinter(cfg)

	tok, err := m.Mint("user-1", "")
	if err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's key slice must not affect the minter.
	cfg.SigningKey[0] ^= 0xff
	if _, err := m.Parse(tok); err != nil {
		t.Fatalf("minter shares key memory with caller: %v", err)
	}
}
