package services

import "errors"

var (
	// ErrInvalidSession covers unknown, expired and orphaned session tokens alike
	ErrInvalidSession = errors.New("invalid or expired session")

	// ErrInvalidOAuthState covers unknown, expired, reused and undecryptable handshake states
	ErrInvalidOAuthState = errors.New("invalid or expired state")

	ErrInvalidStatus    = errors.New("invalid account status")
	ErrUserNotFound     = errors.New("user not found")
	ErrAccountDisabled  = errors.New("account is suspended or banned")
	ErrProviderMismatch = errors.New("oauth provider does not match handshake")
)

// Outcome labels for metrics
const (
	resultSuccess = "success"
	resultInvalid = "invalid"
	resultError   = "error"
)
