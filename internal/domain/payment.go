package domain

// EventCheckoutSessionCompleted is the only payment event that books a car.
const EventCheckoutSessionCompleted = "checkout.session.completed"

const PaymentStatusPaid = "paid"

// CheckoutRequest describes a hosted payment session for a single line item.
type CheckoutRequest struct {
	CustomerEmail      string
	ProductName        string
	ProductDescription string
	Currency           string
	UnitAmount         int64
	Metadata           map[string]string
	SuccessURL         string
	CancelURL          string
}

type CheckoutSession struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}

// PaymentEvent is a verified notification from the payment processor.
type PaymentEvent struct {
	ID        string
	Type      string
	SessionID string
}

// SessionDetail is a payment session as re-fetched from the processor.
type SessionDetail struct {
	ID                 string            `json:"id"`
	PaymentStatus      string            `json:"paymentStatus"`
	AmountTotal        int64             `json:"amountTotal"`
	Currency           string            `json:"currency"`
	Metadata           map[string]string `json:"-"`
	CustomerEmail      string            `json:"customerEmail"`
	CustomerName       string            `json:"customerName"`
	ProductName        string            `json:"productName"`
	ProductDescription string            `json:"productDescription"`
}

// Metadata keys written at checkout and read back by the reconciler.
const (
	MetaUserID      = "userId"
	MetaCarID       = "carId"
	MetaPickupDate  = "pickupDate"
	MetaDropoffDate = "dropoffDate"
	MetaPickupTime  = "pickupTime"
	MetaDropoffTime = "dropoffTime"
	MetaLocation    = "location"
	MetaCarMake     = "carMake"
	MetaCarModel    = "carModel"
)
