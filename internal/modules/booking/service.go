package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/kovidbehl97/vroomtest/internal/domain"
	"go.uber.org/zap"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Service struct {
	bookings BookingStore
	cars     CarReader
	log      *zap.Logger
}

func NewService(bookings BookingStore, cars CarReader, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{bookings: bookings, cars: cars, log: log}
}

// ListMine returns the caller's bookings, newest first, joined with their cars.
func (s *Service) ListMine(ctx context.Context, p *domain.Principal) ([]domain.BookingWithCar, error) {
	if err := domain.Authorize(p, ""); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return s.withCars(ctx, bookings)
}

func (s *Service) withCars(ctx context.Context, bookings []domain.Booking) ([]domain.BookingWithCar, error) {
	out := make([]domain.BookingWithCar, 0, len(bookings))
	if len(bookings) == 0 {
		return out, nil
	}

	seen := make(map[string]bool, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if b.CarID != "" && !seen[b.CarID] {
			seen[b.CarID] = true
			ids = append(ids, b.CarID)
		}
	}

	cars, err := s.cars.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load booked cars: %w", err)
	}
	byID := make(map[string]*domain.Car, len(cars))
	for i := range cars {
		byID[cars[i].ID] = &cars[i]
	}

	for _, b := range bookings {
		out = append(out, domain.BookingWithCar{Booking: b, Car: byID[b.CarID]})
	}
	return out, nil
}

// Get returns one booking to its owner or to an admin.
func (s *Service) Get(ctx context.Context, p *domain.Principal, id string) (*domain.BookingWithCar, error) {
	if err := domain.Authorize(p, ""); err != nil {
		return nil, err
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if b.UserID != p.UserID && !p.IsAdmin() {
		return nil, ErrNotOwner
	}

	joined, err := s.withCars(ctx, []domain.Booking{*b})
	if err != nil {
		return nil, err
	}
	return &joined[0], nil
}

func (s *Service) List(ctx context.Context, p *domain.Principal, page, limit int) (*ListResponse, error) {
	if err := domain.Authorize(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page < 1 {
		page = 1
	}

	bookings, total, err := s.bookings.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return &ListResponse{Bookings: bookings, Total: total}, nil
}

// Export returns every booking joined with its car for the spreadsheet.
func (s *Service) Export(ctx context.Context, p *domain.Principal) ([]domain.BookingWithCar, error) {
	if err := domain.Authorize(p, domain.RoleAdmin); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export bookings: %w", err)
	}
	rows, err := s.withCars(ctx, bookings)
	if err != nil {
		return nil, err
	}
	s.log.Info("bookings exported", zap.Int("rows", len(rows)), zap.String("by", p.UserID))
	return rows, nil
}
