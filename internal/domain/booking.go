package domain

import "time"

type BookingStatus string

const BookingPaid BookingStatus = "paid"

// GuestUserID owns bookings paid without a signed-in user.
const GuestUserID = "guest"

type Booking struct {
	ID            string        `json:"_id"`
	SessionID     string        `json:"sessionId"`
	UserID        string        `json:"userId"`
	CarID         string        `json:"carId"`
	PickupDate    string        `json:"pickupDate"`
	DropoffDate   string        `json:"dropoffDate"`
	PickupTime    string        `json:"pickupTime"`
	DropoffTime   string        `json:"dropoffTime"`
	Location      string        `json:"location"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Status        BookingStatus `json:"status"`
	CustomerEmail string        `json:"customerEmail"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// BookingWithCar is a booking joined with the car it was made for. Car is nil
// when the car has since been removed from the catalog.
type BookingWithCar struct {
	Booking
	Car *Car `json:"car,omitempty"`
}

var Locations = []string{
	"Downtown Office",
	"Airport Terminal",
	"Central Station",
}

func ValidLocation(loc string) bool {
	for _, l := range Locations {
		if l == loc {
			return true
		}
	}
	return false
}
