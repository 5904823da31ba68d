package checkout

import (
	"context"

	"github.com/kovidbehl97/vroomtest/internal/domain"
)

type CarReader interface {
	GetByID(ctx context.Context, id string) (*domain.Car, error)
}

// Gateway opens and reads hosted payment sessions.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error)
	GetSession(ctx context.Context, id string) (*domain.SessionDetail, error)
}
