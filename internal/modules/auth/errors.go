package auth

import "github.com/kovidbehl97/vroomtest/internal/pkg/apperr"

var (
	ErrEmailAlreadyExists = apperr.New(apperr.ErrConflict, "email already registered")
	ErrInvalidCredentials = apperr.New(apperr.ErrUnauthenticated, "invalid email or password")
	ErrUserNotFound       = apperr.New(apperr.ErrNotFound, "user not found")
	ErrInvalidOAuthState  = apperr.New(apperr.ErrUnauthenticated, "invalid oauth state")
	ErrUnverifiedEmail    = apperr.New(apperr.ErrUnauthenticated, "google account email is not verified")
)
