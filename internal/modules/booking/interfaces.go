package booking

import (
	"context"

	"github.com/kovidbehl97/vroomtest/internal/domain"
)

type BookingStore interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, int64, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
}

type CarReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Car, error)
}
