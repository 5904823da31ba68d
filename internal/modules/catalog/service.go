package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/pkg/apperr"
	"github.com/kovidbehl97/vroomtest/internal/pkg/validator"
	"go.uber.org/zap"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type Service struct {
	cars CarStore
	log  *zap.Logger
}

func NewService(cars CarStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cars: cars, log: log}
}

/* ---------- READ ---------- */

func (s *Service) List(ctx context.Context, q ListQuery) (*ListResponse, error) {
	f, err := filterFor(q)
	if err != nil {
		return nil, err
	}

	cars, total, err := s.cars.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	if cars == nil {
		cars = []domain.Car{}
	}
	return &ListResponse{Cars: cars, Total: total}, nil
}

func filterFor(q ListQuery) (domain.CarFilter, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	f := domain.CarFilter{
		Search: strings.TrimSpace(q.Search),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if q.CarType != "" {
		f.CarType = domain.CarType(q.CarType)
		if !f.CarType.Valid() {
			return f, ErrInvalidCarType
		}
	}
	if q.Transmission != "" {
		f.Transmission = domain.Transmission(q.Transmission)
		if !f.Transmission.Valid() {
			return f, ErrInvalidTransmission
		}
	}
	return f, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get car", err)
	}
	return car, nil
}

/* ---------- ADMIN ---------- */

func (s *Service) Create(ctx context.Context, p *domain.Principal, req CreateCarRequest) (*domain.Car, error) {
	if err := domain.Authorize(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	req.Make = strings.TrimSpace(req.Make)
	req.Model = strings.TrimSpace(req.Model)
	if missing := validator.Fields(req, "required"); len(missing) > 0 {
		return nil, apperr.Newf(apperr.ErrMissingField, "missing required fields: %s", strings.Join(missing, ", "))
	}

	car := &domain.Car{
		Make:         req.Make,
		Model:        req.Model,
		Year:         *req.Year,
		Price:        *req.Price,
		Mileage:      *req.Mileage,
		CarType:      domain.CarType(req.CarType),
		Transmission: domain.Transmission(req.Transmission),
		ImageURL:     nonEmpty(req.ImageURL),
	}
	if err := validateCar(car); err != nil {
		return nil, err
	}

	if err := s.cars.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}
	s.log.Info("car created", zap.String("car_id", car.ID), zap.String("by", p.UserID))
	return car, nil
}

func (s *Service) Update(ctx context.Context, p *domain.Principal, id string, req UpdateCarRequest) (*domain.Car, error) {
	if err := domain.Authorize(p, domain.RoleAdmin); err != nil {
		return nil, err
	}

	patch, err := patchFor(req)
	if err != nil {
		return nil, err
	}

	car, err := s.cars.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError("update car", err)
	}
	s.log.Info("car updated", zap.String("car_id", id), zap.String("by", p.UserID))
	return car, nil
}

func patchFor(req UpdateCarRequest) (domain.CarPatch, error) {
	patch := domain.CarPatch{
		Year:    req.Year,
		Price:   req.Price,
		Mileage: req.Mileage,
	}
	if req.Make != nil {
		v := strings.TrimSpace(*req.Make)
		if v == "" {
			return patch, ErrBlankField
		}
		patch.Make = &v
	}
	if req.Model != nil {
		v := strings.TrimSpace(*req.Model)
		if v == "" {
			return patch, ErrBlankField
		}
		patch.Model = &v
	}
	if req.CarType != nil {
		t := domain.CarType(*req.CarType)
		if !t.Valid() {
			return patch, ErrInvalidCarType
		}
		patch.CarType = &t
	}
	if req.Transmission != nil {
		t := domain.Transmission(*req.Transmission)
		if !t.Valid() {
			return patch, ErrInvalidTransmission
		}
		patch.Transmission = &t
	}
	if req.Price != nil && !validPrice(*req.Price) {
		return patch, ErrInvalidPrice
	}
	if (req.Year != nil && *req.Year < 0) || (req.Mileage != nil && *req.Mileage < 0) {
		return patch, ErrInvalidNumber
	}
	if req.ImageURL.Set {
		patch.ImageURLSet = true
		patch.ImageURL = nonEmpty(req.ImageURL.Value)
	}
	return patch, nil
}

func (s *Service) Delete(ctx context.Context, p *domain.Principal, id string) error {
	if err := domain.Authorize(p, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.cars.Delete(ctx, id); err != nil {
		return storeError("delete car", err)
	}
	s.log.Info("car deleted", zap.String("car_id", id), zap.String("by", p.UserID))
	return nil
}

/* ---------- HELPERS ---------- */

func validateCar(c *domain.Car) error {
	if !c.CarType.Valid() {
		return ErrInvalidCarType
	}
	if !c.Transmission.Valid() {
		return ErrInvalidTransmission
	}
	if !validPrice(c.Price) {
		return ErrInvalidPrice
	}
	if c.Year < 0 || c.Mileage < 0 {
		return ErrInvalidNumber
	}
	return nil
}

func validPrice(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// nonEmpty treats "" as no image.
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func storeError(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrCarNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
