package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when no session exists for the given ID.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExpired is returned when the stored session's expiry has passed.
var ErrSessionExpired = errors.New("session expired")

// ErrSessionCorrupt is returned when the stored session blob cannot be decoded.
var ErrSessionCorrupt = errors.New("session corrupt")

// ErrRedisUnavailable is an exported constant or variable used by the authentication gate.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Store persists sessions in Redis under prefix-scoped keys with a TTL derived
// from the session expiry.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewStore describes the newstore operation and its observable behavior.
//
// NewStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewStore(rdb redis.UniversalClient, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) key(sessionID string) string {
	return s.prefix + ":sess:" + sessionID
}

// Put writes the session under sessionID with a Redis TTL matching its expiry.
// Sessions must carry a future ExpiresAt; anything else is a caller bug.
func (s *Store) Put(ctx context.Context, sessionID string, sess *Session) error {
	if sess == nil || sessionID == "" {
		return errors.New("session and sessionID are required")
	}
	ttl := time.Until(time.Unix(sess.ExpiresAt, 0))
	if ttl <= 0 {
		return errors.New("session expiry must be in the future")
	}

	data, err := Encode(sess)
	if err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, s.key(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Get returns the verified session for sessionID. Missing sessions yield
// [ErrSessionNotFound]; expired or undecodable blobs are deleted best-effort and
// yield [ErrSessionExpired] resp. [ErrSessionCorrupt]; transport failures yield a
// wrapped [ErrRedisUnavailable].
func (s *Store) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.rdb.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	sess, err := Decode(data)
	if err != nil {
		_ = s.rdb.Del(context.WithoutCancel(ctx), s.key(sessionID)).Err()
		return nil, ErrSessionCorrupt
	}

	if sess.Expired(time.Now()) {
		_ = s.rdb.Del(context.WithoutCancel(ctx), s.key(sessionID)).Err()
		return nil, ErrSessionExpired
	}

	return sess, nil
}

// Delete removes the session for sessionID. Deleting an absent session is not an
// error; logout must be idempotent.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// StoreResolver is the strong strategy: the named cookie's value is a session ID
// verified against the [Store]. Each lookup is bounded by Timeout; a lookup that
// fails for infrastructure reasons resolves to unauthenticated and reports the
// error so callers can audit it.
type StoreResolver struct {
	Store      *Store
	CookieName string
	Timeout    time.Duration
}

// Resolve describes the resolve operation and its observable behavior.
//
// Resolve may return an error when input validation, dependency calls, or security checks fail.
// Resolve does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (sr *StoreResolver) Resolve(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(sr.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	if sr.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sr.Timeout)
		defer cancel()
	}

	sess, err := sr.Store.Get(ctx, cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound),
			errors.Is(err, ErrSessionExpired),
			errors.Is(err, ErrSessionCorrupt):
			// Explicit "no valid session" signals: unauthenticated, not a failure.
			return nil, nil
		default:
			return nil, err
		}
	}

	return sess, nil
}
