package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/kovidbehl97/vroomtest/internal/domain"
)

// OptionalString tells an absent JSON field apart from an explicit null.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Year, price and mileage are pointers so that 0 can be told apart from a
// missing field.
type CreateCarRequest struct {
	Make         string   `json:"make" validate:"required"`
	Model        string   `json:"model" validate:"required"`
	Year         *int     `json:"year" validate:"required"`
	Price        *float64 `json:"price" validate:"required"`
	Mileage      *int     `json:"mileage" validate:"required"`
	CarType      string   `json:"carType" validate:"required"`
	Transmission string   `json:"transmission" validate:"required"`
	ImageURL     *string  `json:"imageUrl"`
}

type UpdateCarRequest struct {
	Make         *string        `json:"make,omitempty"`
	Model        *string        `json:"model,omitempty"`
	Year         *int           `json:"year,omitempty"`
	Price        *float64       `json:"price,omitempty"`
	Mileage      *int           `json:"mileage,omitempty"`
	CarType      *string        `json:"carType,omitempty"`
	Transmission *string        `json:"transmission,omitempty"`
	ImageURL     OptionalString `json:"imageUrl"`
}

type ListQuery struct {
	Search       string
	CarType      string
	Transmission string
	Page         int
	Limit        int
}

type ListResponse struct {
	Cars  []domain.Car `json:"cars"`
	Total int64        `json:"total"`
}
