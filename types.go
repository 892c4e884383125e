package taskgate

import (
	"io"

	internalaudit "github.com/tasknest/taskgate/internal/audit"
	"github.com/tasknest/taskgate/session"
)

// DecisionKind defines a public type used by taskgate APIs.
//
// DecisionKind instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type DecisionKind uint8

const (
	// DecisionAllow is an exported constant or variable used by the authentication gate.
	DecisionAllow DecisionKind = iota
	// DecisionRedirectToLogin is an exported constant or variable used by the authentication gate.
	DecisionRedirectToLogin
	// DecisionRedirectToDashboard is an exported constant or variable used by the authentication gate.
	DecisionRedirectToDashboard
)

// String describes the string operation and its observable behavior.
func (k DecisionKind) String() string {
	switch k {
	case DecisionRedirectToLogin:
		return "redirect_login"
	case DecisionRedirectToDashboard:
		return "redirect_dashboard"
	default:
		return "allow"
	}
}

// Decision is returned by [Gate.Evaluate]. It is terminal per request: either the
// request proceeds (Allow, with the resolved session when one exists) or the
// boundary adapter issues the redirect in Location.
type Decision struct {
	Kind     DecisionKind
	Location string
	Session  *session.Session
}

// AuditEvent is a structured audit record emitted by the gate.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the gate's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
