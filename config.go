package taskgate

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/tasknest/taskgate/backend"
)

// Config defines a public type used by taskgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Routes  RoutesConfig
	Session SessionConfig
	Token   TokenConfig
	Backend BackendConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
ROUTES CONFIG
====================================
*/

// RoutesConfig defines a public type used by taskgate APIs.
//
// RoutesConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RoutesConfig struct {
	Rules         []RouteRule
	LoginPath     string
	DashboardPath string
	RedirectParam string
}

/*
====================================
SESSION CONFIG
====================================
*/

// ResolverMode defines a public type used by taskgate APIs.
//
// ResolverMode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ResolverMode int

const (
	// ResolverInherit is an exported constant or variable used by the authentication gate.
	ResolverInherit ResolverMode = -1

	// ResolverCookie is an exported constant or variable used by the authentication gate.
	//
	// Cookie mode treats the presence of a non-empty session cookie as authenticated
	// with no cryptographic or expiry check at this layer. It is the weak strategy:
	// correctness depends entirely on the cookie being unguessable and invalidated
	// server-side on logout.
	ResolverCookie ResolverMode = iota
	// ResolverStore is an exported constant or variable used by the authentication gate.
	ResolverStore
)

// SessionConfig defines a public type used by taskgate APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	Mode           ResolverMode
	CookieName     string
	RedisPrefix    string
	ResolveTimeout time.Duration
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by taskgate APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	SigningKey []byte
	TTL        time.Duration
	Issuer     string
	Audience   string
	Leeway     time.Duration
}

/*
====================================
BACKEND CONFIG
====================================
*/

// BackendConfig defines a public type used by taskgate APIs.
//
// BackendConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BackendConfig struct {
	BaseURL     string
	CallTimeout time.Duration
	Policies    backend.CallPolicies
}

// AuditConfig defines a public type used by taskgate APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by taskgate APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		Routes: RoutesConfig{
			Rules: []RouteRule{
				{Prefix: "/dashboard", Class: RouteProtected},
				{Prefix: "/tasks", Class: RouteProtected},
				{Prefix: "/login", Class: RouteAuthOnly},
				{Prefix: "/signup", Class: RouteAuthOnly},
			},
			LoginPath:     "/login",
			DashboardPath: "/dashboard",
			RedirectParam: "redirect",
		},
		Session: SessionConfig{
			Mode:           ResolverStore,
			CookieName:     "tasknest.session_token",
			RedisPrefix:    "tg",
			ResolveTimeout: 2 * time.Second,
		},
		Token: TokenConfig{
			TTL: time.Hour,
		},
		Backend: BackendConfig{
			CallTimeout: 5 * time.Second,
			Policies: backend.CallPolicies{
				List:   backend.Policy401Degrade,
				Get:    backend.Policy401Redirect,
				Create: backend.Policy401Redirect,
				Update: backend.Policy401Redirect,
			},
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig returns the default configuration with strong (store-backed) session
// resolution, the original route table of the todo frontend, and a one-hour credential
// lifetime. The signing key and backend base URL must still be supplied by the caller.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.SigningKey = cloneBytes(cfg.Token.SigningKey)
	if len(cfg.Routes.Rules) > 0 {
		out.Routes.Rules = make([]RouteRule, len(cfg.Routes.Rules))
		copy(out.Routes.Rules, cfg.Routes.Rules)
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Token
	if len(c.Token.SigningKey) == 0 {
		return ErrSigningKeyMissing
	}
	if c.Token.TTL <= 0 {
		return errors.New("Token TTL must be > 0")
	}
	if c.Token.Leeway < 0 || c.Token.Leeway > 2*time.Minute {
		return errors.New("Token Leeway must be between 0 and 2m")
	}
	if c.Token.Issuer != "" && strings.TrimSpace(c.Token.Issuer) == "" {
		return errors.New("Token Issuer must not be blank")
	}
	if c.Token.Audience != "" && strings.TrimSpace(c.Token.Audience) == "" {
		return errors.New("Token Audience must not be blank")
	}

	// Session
	switch c.Session.Mode {
	case ResolverCookie, ResolverStore:
		// valid
	default:
		return errors.New("Session Mode must be ResolverCookie or ResolverStore")
	}
	if c.Session.CookieName == "" {
		return errors.New("Session CookieName is required")
	}
	if c.Session.ResolveTimeout <= 0 {
		return errors.New("Session ResolveTimeout must be > 0")
	}
	if c.Session.Mode == ResolverStore && c.Session.RedisPrefix == "" {
		return errors.New("Session RedisPrefix is required in store mode")
	}

	// Routes
	if err := validateRules(c.Routes.Rules); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Routes.LoginPath, "/") {
		return errors.New("Routes LoginPath must start with /")
	}
	if !strings.HasPrefix(c.Routes.DashboardPath, "/") {
		return errors.New("Routes DashboardPath must start with /")
	}
	if c.Routes.RedirectParam == "" {
		return errors.New("Routes RedirectParam is required")
	}

	// Backend
	if c.Backend.BaseURL == "" {
		return errors.New("Backend BaseURL is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("Backend BaseURL must be an absolute http(s) URL")
	}
	if c.Backend.CallTimeout <= 0 {
		return errors.New("Backend CallTimeout must be > 0")
	}
	if err := c.Backend.Policies.Validate(); err != nil {
		return err
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
