// Package token mints and verifies the short-lived HS256 bearer credentials that the
// frontend presents to the task backend in place of its session cookie. Credentials are
// created fresh per outbound call, carry subject/email/iat/exp/jti claims, and are signed
// with a process-wide symmetric key validated once at startup.
package token
