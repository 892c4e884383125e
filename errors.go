package taskgate

import "errors"

var (
	// ErrSigningKeyMissing is an exported constant or variable used by the authentication gate.
	ErrSigningKeyMissing = errors.New("signing key missing or empty")
	// ErrGateNotReady is an exported constant or variable used by the authentication gate.
	ErrGateNotReady = errors.New("gate not initialized")
	// ErrInvalidResolverMode is an exported constant or variable used by the authentication gate.
	ErrInvalidResolverMode = errors.New("invalid session resolver mode")
	// ErrStoreResolverUnavailable is an exported constant or variable used by the authentication gate.
	ErrStoreResolverUnavailable = errors.New("store resolver requires a redis client")
	// ErrSessionResolution is an exported constant or variable used by the authentication gate.
	//
	// Resolution failures are recovered by treating the request as unauthenticated
	// (fail closed); the error is surfaced only through audit events and metrics.
	ErrSessionResolution = errors.New("session resolution failed")
)
