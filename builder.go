package taskgate

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/tasknest/taskgate/backend"
	internalaudit "github.com/tasknest/taskgate/internal/audit"
	"github.com/tasknest/taskgate/session"
	"github.com/tasknest/taskgate/token"
)

// Builder defines a public type used by taskgate APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	resolver  session.Resolver
	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithSigningKey describes the withsigningkey operation and its observable behavior.
//
// WithSigningKey does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithSigningKey(key []byte) *Builder {
	b.config.Token.SigningKey = cloneBytes(key)
	return b
}

// WithBackendBaseURL describes the withbackendbaseurl operation and its observable behavior.
//
// WithBackendBaseURL does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithBackendBaseURL(baseURL string) *Builder {
	b.config.Backend.BaseURL = baseURL
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithResolver replaces the store-backed strong resolver with a custom
// implementation. The weak cookie resolver is unaffected.
//
// WithResolver does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithResolver(r session.Resolver) *Builder {
	b.resolver = r
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Gate, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Session.Mode == ResolverStore && b.redis == nil && b.resolver == nil {
		return nil, errors.New("store mode requires a redis client or a custom resolver")
	}

	// -------- TOKEN MINTER --------
	minter, err := token.NewMinter(token.Config{
		SigningKey: cfg.Token.SigningKey,
		TTL:        cfg.Token.TTL,
		Issuer:     cfg.Token.Issuer,
		Audience:   cfg.Token.Audience,
		Leeway:     cfg.Token.Leeway,
	})
	if err != nil {
		return nil, err
	}

	// -------- BACKEND CLIENT --------
	backendClient, err := backend.NewClient(backend.Config{
		BaseURL:     cfg.Backend.BaseURL,
		CallTimeout: cfg.Backend.CallTimeout,
		Policies:    cfg.Backend.Policies,
	}, minter)
	if err != nil {
		return nil, err
	}

	// -------- SESSION RESOLUTION --------
	cookieResolver := &session.CookieResolver{CookieName: cfg.Session.CookieName}

	var sessionStore *session.Store
	storeResolver := b.resolver
	if storeResolver == nil && b.redis != nil {
		sessionStore = session.NewStore(b.redis, cfg.Session.RedisPrefix)
		storeResolver = &session.StoreResolver{
			Store:      sessionStore,
			CookieName: cfg.Session.CookieName,
			Timeout:    cfg.Session.ResolveTimeout,
		}
	}

	// -------- AUDIT --------
	var dispatcher *internalaudit.Dispatcher
	if cfg.Audit.Enabled {
		dispatcher = internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    true,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.auditSink)
	}

	g := &Gate{
		config:         cfg,
		classifier:     newClassifier(cfg.Routes.Rules),
		cookieResolver: cookieResolver,
		storeResolver:  storeResolver,
		sessionStore:   sessionStore,
		minter:         minter,
		backend:        backendClient,
		audit:          dispatcher,
		metrics:        NewMetrics(cfg.Metrics),
	}

	b.built = true
	return g, nil
}
