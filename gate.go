package taskgate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tasknest/taskgate/backend"
	internalaudit "github.com/tasknest/taskgate/internal/audit"
	"github.com/tasknest/taskgate/internal/flows"
	"github.com/tasknest/taskgate/session"
	"github.com/tasknest/taskgate/token"
)

// Gate defines a public type used by taskgate APIs.
//
// Gate instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Gate struct {
	config     Config
	classifier *classifier

	cookieResolver session.Resolver
	storeResolver  session.Resolver
	sessionStore   *session.Store

	minter  *token.Minter
	backend *backend.Client
	audit   *internalaudit.Dispatcher
	metrics *Metrics
}

// Classify reports the route class of path under the configured rule table.
// It performs no I/O.
func (g *Gate) Classify(path string) RouteClass {
	if g == nil || g.classifier == nil {
		return RoutePublic
	}
	return g.classifier.Classify(path)
}

// Decide combines a route class with session presence into a terminal decision
// without resolving anything. It is the pure core of [Gate.Evaluate]: identical
// inputs always yield identical outputs, and exactly one rule fires per call.
func (g *Gate) Decide(class RouteClass, authenticated bool, path string) Decision {
	if g == nil {
		return Decision{Kind: DecisionRedirectToLogin, Location: "/login"}
	}

	fd := flows.Decide(int(class), authenticated, path, g.decideConfig())
	return Decision{
		Kind:     DecisionKind(fd.Kind),
		Location: fd.Location,
	}
}

// Evaluate describes the evaluate operation and its observable behavior.
//
// Evaluate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Gate) Evaluate(ctx context.Context, r *http.Request) Decision {
	return g.EvaluateMode(ctx, r, ResolverInherit)
}

// EvaluateMode runs one gate evaluation with an explicit resolver strategy.
// ResolverInherit uses the configured default. Public routes short-circuit
// before any session resolution, so they never touch the session store.
// Resolution failures are treated as unauthenticated (fail closed), counted
// under [MetricResolveFailure], and reported through the audit dispatcher.
//
// EvaluateMode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Gate) EvaluateMode(ctx context.Context, r *http.Request, mode ResolverMode) Decision {
	// A nil gate fails closed rather than waving requests through.
	if g == nil || r == nil {
		return Decision{Kind: DecisionRedirectToLogin, Location: "/login"}
	}

	start := time.Now()
	path := r.URL.Path
	class := g.classifier.Classify(path)

	if class == RoutePublic {
		g.metricInc(MetricGateAllow)
		g.observeEvaluate(start)
		return Decision{Kind: DecisionAllow}
	}

	var sess *session.Session

	resolver, err := g.resolverFor(mode)
	if err == nil {
		sess, err = resolver.Resolve(ctx, r)
	}
	if err != nil {
		g.metricInc(MetricResolveFailure)
		g.auditResolveFailure(ctx, path, fmt.Errorf("%w: %w", ErrSessionResolution, err))
		sess = nil
	}
	if sess != nil && sess.Expired(time.Now()) {
		sess = nil
	}

	fd := flows.Decide(int(class), sess != nil, path, g.decideConfig())
	decision := Decision{
		Kind:     DecisionKind(fd.Kind),
		Location: fd.Location,
	}
	if decision.Kind == DecisionAllow {
		decision.Session = sess
	}

	switch decision.Kind {
	case DecisionRedirectToLogin:
		g.metricInc(MetricGateRedirectLogin)
	case DecisionRedirectToDashboard:
		g.metricInc(MetricGateRedirectDashboard)
	default:
		g.metricInc(MetricGateAllow)
	}
	g.observeEvaluate(start)
	g.auditDecision(ctx, path, sess, decision)

	return decision
}

func (g *Gate) decideConfig() flows.DecideConfig {
	return flows.DecideConfig{
		ClassProtected: int(RouteProtected),
		ClassAuthOnly:  int(RouteAuthOnly),
		LoginPath:      g.config.Routes.LoginPath,
		DashboardPath:  g.config.Routes.DashboardPath,
		RedirectParam:  g.config.Routes.RedirectParam,
	}
}

func (g *Gate) resolverFor(mode ResolverMode) (session.Resolver, error) {
	if mode == ResolverInherit {
		mode = g.config.Session.Mode
	}

	switch mode {
	case ResolverCookie:
		return g.cookieResolver, nil
	case ResolverStore:
		if g.storeResolver == nil {
			return nil, ErrStoreResolverUnavailable
		}
		return g.storeResolver, nil
	default:
		return nil, ErrInvalidResolverMode
	}
}

// Minter describes the minter operation and its observable behavior.
func (g *Gate) Minter() *token.Minter {
	if g == nil {
		return nil
	}
	return g.minter
}

// Backend describes the backend operation and its observable behavior.
func (g *Gate) Backend() *backend.Client {
	if g == nil {
		return nil
	}
	return g.backend
}

// Store describes the store operation and its observable behavior.
//
// Store returns nil when the gate was built without a redis client.
func (g *Gate) Store() *session.Store {
	if g == nil {
		return nil
	}
	return g.sessionStore
}

// Config returns a defensive copy of the gate's effective configuration.
func (g *Gate) Config() Config {
	if g == nil {
		return Config{}
	}
	return cloneConfig(g.config)
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Gate) Close() {
	if g == nil {
		return
	}
	if g.audit != nil {
		g.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
func (g *Gate) AuditDropped() uint64 {
	if g == nil || g.audit == nil {
		return 0
	}
	return g.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Gate) MetricsSnapshot() MetricsSnapshot {
	if g == nil || g.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return g.metrics.Snapshot()
}

func (g *Gate) metricInc(id MetricID) {
	if g == nil || g.metrics == nil {
		return
	}
	g.metrics.Inc(id)
}

func (g *Gate) observeEvaluate(start time.Time) {
	if g == nil || g.metrics == nil {
		return
	}
	g.metrics.Observe(MetricEvaluateLatency, time.Since(start))
}
