package notification

import "context"

// BookingConfirmation is the data rendered into the confirmation email.
type BookingConfirmation struct {
	CustomerName string
	SessionID    string
	CarMake      string
	CarModel     string
	PickupDate   string
	DropoffDate  string
	PickupTime   string
	DropoffTime  string
	Location     string
	Amount       float64
	Currency     string
}

type Mailer interface {
	SendBookingConfirmation(ctx context.Context, to string, b BookingConfirmation) error
}

const confirmationSubject = "Your Car Rental Booking is Confirmed!"
