package catalog

import (
	"context"

	"github.com/kovidbehl97/vroomtest/internal/domain"
)

type CarStore interface {
	Create(ctx context.Context, c *domain.Car) error
	GetByID(ctx context.Context, id string) (*domain.Car, error)
	List(ctx context.Context, f domain.CarFilter) ([]domain.Car, int64, error)
	Update(ctx context.Context, id string, patch domain.CarPatch) (*domain.Car, error)
	Delete(ctx context.Context, id string) error
}
