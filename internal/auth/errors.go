package auth

import "errors"

var (
	// ErrNonceMismatch is returned when the id_token nonce does not match the handshake
	ErrNonceMismatch = errors.New("id_token nonce mismatch")

	// ErrMissingIDToken is returned when an OIDC provider omits the id_token
	ErrMissingIDToken = errors.New("token response has no id_token")

	// ErrNoEmail is returned when the provider account has no usable email address
	ErrNoEmail = errors.New("provider account has no verified email address")
)
