package taskgate

import (
	"context"
	"errors"
	"time"

	"github.com/tasknest/taskgate/session"
)

const (
	auditEventGateDecision   = "gate_decision"
	auditEventResolveFailure = "session_resolve_failure"
)

// AuditErrorCode defines a public type used by taskgate APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrInvalidResolverMode AuditErrorCode = "invalid_resolver_mode"
	auditErrStoreUnavailable    AuditErrorCode = "store_unavailable"
	auditErrStoreLookup         AuditErrorCode = "store_lookup_failed"
	auditErrInternal            AuditErrorCode = "internal_error"
)

func (g *Gate) auditDecision(ctx context.Context, path string, sess *session.Session, decision Decision) {
	if g == nil || g.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: auditEventGateDecision,
		Path:      path,
		Decision:  decision.Kind.String(),
		IP:        clientIPFromContext(ctx),
		Success:   decision.Kind == DecisionAllow,
	}
	if sess != nil {
		event.Subject = sess.Subject
	}
	if decision.Location != "" {
		event.Metadata = map[string]string{"location": decision.Location}
	}
	if ua := userAgentFromContext(ctx); ua != "" {
		if event.Metadata == nil {
			event.Metadata = map[string]string{}
		}
		event.Metadata["user_agent"] = ua
	}

	g.audit.Emit(ctx, event)
}

func (g *Gate) auditResolveFailure(ctx context.Context, path string, err error) {
	if g == nil || g.audit == nil {
		return
	}

	g.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: auditEventResolveFailure,
		Path:      path,
		IP:        clientIPFromContext(ctx),
		Success:   false,
		Error:     string(auditErrorCode(err)),
	})
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidResolverMode):
		return auditErrInvalidResolverMode
	case errors.Is(err, ErrStoreResolverUnavailable):
		return auditErrStoreUnavailable
	case errors.Is(err, session.ErrRedisUnavailable):
		return auditErrStoreLookup
	default:
		return auditErrInternal
	}
}
