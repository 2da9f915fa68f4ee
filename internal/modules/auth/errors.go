package auth

import "errors"

var (
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password so a
	// caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken covers missing, revoked and expired refresh tokens
	// without distinguishing them.
	ErrInvalidToken = errors.New("invalid refresh token")
)
