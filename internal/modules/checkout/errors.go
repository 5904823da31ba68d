package checkout

import "github.com/kovidbehl97/vroomtest/internal/pkg/apperr"

var (
	ErrCarNotFound       = apperr.New(apperr.ErrNotFound, "car not found")
	ErrInvalidLocation   = apperr.New(apperr.ErrInvalidInput, "unknown pickup location")
	ErrSessionIDRequired = apperr.New(apperr.ErrMissingField, "session id is required")
	ErrSessionNotFound   = apperr.New(apperr.ErrNotFound, "checkout session not found")
)
