package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenRevoked is returned when a refresh token has no matching
	// active session in the store.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrUnauthorizedSession is returned when a session exists but belongs
	// to a different user. Surfaced to clients as not found.
	ErrUnauthorizedSession = errors.New("session belongs to another user")
)
