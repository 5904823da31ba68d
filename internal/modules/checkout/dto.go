package checkout

type CreateSessionRequest struct {
	CarID       string `json:"carId" validate:"required"`
	PickupDate  string `json:"pickupDate" validate:"required"`
	DropoffDate string `json:"dropoffDate" validate:"required"`
	PickupTime  string `json:"pickupTime" validate:"required"`
	DropoffTime string `json:"dropoffTime" validate:"required"`
	Location    string `json:"location" validate:"required"`
}

type ReceiptResponse struct {
	SessionID     string  `json:"sessionId"`
	PaymentStatus string  `json:"paymentStatus"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerName  string  `json:"customerName"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Car           string  `json:"car"`
	PickupDate    string  `json:"pickupDate"`
	DropoffDate   string  `json:"dropoffDate"`
	Location      string  `json:"location"`
}
