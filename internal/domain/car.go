package domain

import (
	"errors"
	"time"
)

type CarType string

const (
	CarSUV       CarType = "SUV"
	CarSedan     CarType = "Sedan"
	CarHatchback CarType = "Hatchback"
)

func (t CarType) Valid() bool {
	switch t {
	case CarSUV, CarSedan, CarHatchback:
		return true
	}
	return false
}

type Transmission string

const (
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionManual    Transmission = "Manual"
)

func (t Transmission) Valid() bool {
	return t == TransmissionAutomatic || t == TransmissionManual
}

type Car struct {
	ID           string       `json:"_id"`
	Make         string       `json:"make"`
	Model        string       `json:"model"`
	Year         int          `json:"year"`
	Price        float64      `json:"price"`
	Mileage      int          `json:"mileage"`
	CarType      CarType      `json:"carType"`
	Transmission Transmission `json:"transmission"`
	ImageURL     *string      `json:"imageUrl"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// CarFilter narrows a catalog listing. Limit and Offset are already resolved
// from page/limit by the caller.
type CarFilter struct {
	Search       string
	CarType      CarType
	Transmission Transmission
	Limit        int
	Offset       int
}

// CarPatch carries the fields of a partial update. Nil fields are left
// untouched; ImageURLSet distinguishes "clear the image" from "not given".
type CarPatch struct {
	Make         *string
	Model        *string
	Year         *int
	Price        *float64
	Mileage      *int
	CarType      *CarType
	Transmission *Transmission
	ImageURL     *string
	ImageURLSet  bool
}

func (p CarPatch) Empty() bool {
	return p.Make == nil && p.Model == nil && p.Year == nil && p.Price == nil &&
		p.Mileage == nil && p.CarType == nil && p.Transmission == nil && !p.ImageURLSet
}

// Store level errors shared by the SQL and document backends.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)
