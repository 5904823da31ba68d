package payment

import (
	"context"

	"github.com/kovidbehl97/vroomtest/internal/domain"
)

// Gateway verifies incoming events and re-reads sessions from the processor.
type Gateway interface {
	ParseEvent(payload []byte, signature string) (*domain.PaymentEvent, error)
	GetSession(ctx context.Context, id string) (*domain.SessionDetail, error)
}

type BookingStore interface {
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Booking, error)
	Create(ctx context.Context, b *domain.Booking) error
}
