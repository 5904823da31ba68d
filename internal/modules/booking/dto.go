package booking

import "github.com/kovidbehl97/vroomtest/internal/domain"

type ListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int64            `json:"total"`
}
