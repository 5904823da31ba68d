package booking

import "github.com/kovidbehl97/vroomtest/internal/pkg/apperr"

var (
	ErrBookingNotFound = apperr.New(apperr.ErrNotFound, "booking not found")
	ErrNotOwner        = apperr.New(apperr.ErrForbidden, "booking belongs to another user")
)
