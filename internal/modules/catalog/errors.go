package catalog

import "github.com/kovidbehl97/vroomtest/internal/pkg/apperr"

var (
	ErrCarNotFound         = apperr.New(apperr.ErrNotFound, "car not found")
	ErrInvalidCarType      = apperr.New(apperr.ErrInvalidInput, "carType must be one of SUV, Sedan, Hatchback")
	ErrInvalidTransmission = apperr.New(apperr.ErrInvalidInput, "transmission must be Automatic or Manual")
	ErrInvalidPrice        = apperr.New(apperr.ErrInvalidInput, "price must be greater than zero")
	ErrInvalidNumber       = apperr.New(apperr.ErrInvalidInput, "year and mileage must not be negative")
	ErrBlankField          = apperr.New(apperr.ErrInvalidInput, "make and model must not be blank")
)
