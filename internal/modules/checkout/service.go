package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/pkg/apperr"
	"github.com/kovidbehl97/vroomtest/internal/pkg/validator"
	"go.uber.org/zap"
)

const guestEmail = "guest@example.com"

type Config struct {
	Currency string
	// BaseURL is used for redirect URLs when the request origin is not
	// one of AllowedOrigins.
	BaseURL        string
	AllowedOrigins []string
	Timeout        time.Duration
}

type Service struct {
	cars    CarReader
	gateway Gateway
	cfg     Config
	log     *zap.Logger
}

func NewService(cars CarReader, gateway Gateway, cfg Config, log *zap.Logger) *Service {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Service{cars: cars, gateway: gateway, cfg: cfg, log: log}
}

// CreateSession validates a booking request, prices it and opens a hosted
// payment session. Nothing is stored locally.
func (s *Service) CreateSession(ctx context.Context, p *domain.Principal, req CreateSessionRequest, origin string) (*domain.CheckoutSession, error) {
	req = trimRequest(req)
	if missing := validator.Fields(req, "required"); len(missing) > 0 {
		return nil, apperr.Newf(apperr.ErrMissingField, "missing booking data: %s", strings.Join(missing, ", "))
	}

	car, err := s.cars.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("get car: %w", err)
	}

	total, err := CalculateTotal(car.Price, req.PickupDate, req.DropoffDate)
	if err != nil {
		return nil, err
	}
	if !domain.ValidLocation(req.Location) {
		return nil, ErrInvalidLocation
	}

	userID, email := domain.GuestUserID, guestEmail
	if p != nil && p.UserID != "" {
		userID = p.UserID
		if p.Email != "" {
			email = p.Email
		}
	}

	base := s.redirectBase(origin)
	checkoutReq := domain.CheckoutRequest{
		CustomerEmail:      email,
		ProductName:        fmt.Sprintf("%s %s", car.Make, car.Model),
		ProductDescription: fmt.Sprintf("Car booking for %d", car.Year),
		Currency:           s.cfg.Currency,
		UnitAmount:         ToMinorUnits(total),
		Metadata: map[string]string{
			domain.MetaUserID:      userID,
			domain.MetaCarID:       car.ID,
			domain.MetaPickupDate:  req.PickupDate,
			domain.MetaDropoffDate: req.DropoffDate,
			domain.MetaPickupTime:  req.PickupTime,
			domain.MetaDropoffTime: req.DropoffTime,
			domain.MetaLocation:    req.Location,
			domain.MetaCarMake:     car.Make,
			domain.MetaCarModel:    car.Model,
		},
		SuccessURL: base + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  base + "/?canceled=true",
	}

	gctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	session, err := s.gateway.CreateCheckoutSession(gctx, checkoutReq)
	if err != nil {
		s.log.Error("create checkout session failed",
			zap.String("car_id", car.ID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, apperr.Wrap(apperr.ErrUpstream, "create checkout session", err)
	}

	s.log.Info("checkout session created",
		zap.String("session_id", session.ID),
		zap.String("car_id", car.ID),
		zap.String("user_id", userID),
		zap.Int64("amount", checkoutReq.UnitAmount),
	)
	return session, nil
}

// Receipt returns the payment summary shown on the success page.
func (s *Service) Receipt(ctx context.Context, sessionID string) (*ReceiptResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrSessionIDRequired
	}

	gctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	d, err := s.gateway.GetSession(gctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, apperr.Wrap(apperr.ErrUpstream, "retrieve checkout session", err)
	}

	return &ReceiptResponse{
		SessionID:     d.ID,
		PaymentStatus: d.PaymentStatus,
		CustomerEmail: d.CustomerEmail,
		CustomerName:  d.CustomerName,
		Amount:        float64(d.AmountTotal) / 100,
		Currency:      d.Currency,
		Car:           d.ProductName,
		PickupDate:    d.Metadata[domain.MetaPickupDate],
		DropoffDate:   d.Metadata[domain.MetaDropoffDate],
		Location:      d.Metadata[domain.MetaLocation],
	}, nil
}

func (s *Service) redirectBase(origin string) string {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin != "" {
		for _, o := range s.cfg.AllowedOrigins {
			if strings.TrimRight(o, "/") == origin {
				return origin
			}
		}
	}
	return strings.TrimRight(s.cfg.BaseURL, "/")
}

func trimRequest(r CreateSessionRequest) CreateSessionRequest {
	r.CarID = strings.TrimSpace(r.CarID)
	r.PickupDate = strings.TrimSpace(r.PickupDate)
	r.DropoffDate = strings.TrimSpace(r.DropoffDate)
	r.PickupTime = strings.TrimSpace(r.PickupTime)
	r.DropoffTime = strings.TrimSpace(r.DropoffTime)
	r.Location = strings.TrimSpace(r.Location)
	return r
}
