package auth

import "errors"

var (
	// ErrInvalidToken is returned when a bearer token fails validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidSubject is returned when the subject claim is not a user ID.
	ErrInvalidSubject = errors.New("invalid subject claim")
	// ErrAPIKeyExpired is returned when a presented API key is past its expiry.
	ErrAPIKeyExpired = errors.New("API key has expired")
)
