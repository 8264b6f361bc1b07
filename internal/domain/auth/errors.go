package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCSRFToken   = errors.New("invalid or expired csrf token")
)
