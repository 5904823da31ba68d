package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/events"
	"github.com/kovidbehl97/vroomtest/internal/lock"
	"github.com/kovidbehl97/vroomtest/internal/notification"
	"github.com/kovidbehl97/vroomtest/internal/pkg/apperr"
	"go.uber.org/zap"
)

// Outcome is how a verified webhook delivery was settled. All outcomes are
// acknowledged with 200.
type Outcome string

const (
	OutcomeIgnored   Outcome = "ignored"
	OutcomeUnpaid    Outcome = "unpaid"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeRecorded  Outcome = "recorded"
)

const (
	fallbackEmail = "unknown@example.com"
	fallbackName  = "Customer"
)

type Options struct {
	Mailer    notification.Mailer
	Publisher events.Publisher
	// Locker is optional; the unique session index is what guarantees a
	// single booking.
	Locker  lock.Locker
	Timeout time.Duration
	Logger  *zap.Logger
}

type Service struct {
	gateway  Gateway
	bookings BookingStore
	mailer   notification.Mailer
	events   events.Publisher
	locker   lock.Locker
	timeout  time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewService(gateway Gateway, bookings BookingStore, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.NopPublisher{}
	}
	if opts.Mailer == nil {
		opts.Mailer = notification.NewConsoleMailer(opts.Logger)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Service{
		gateway:  gateway,
		bookings: bookings,
		mailer:   opts.Mailer,
		events:   opts.Publisher,
		locker:   opts.Locker,
		timeout:  opts.Timeout,
		log:      opts.Logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// HandleWebhook turns a completed, paid checkout session into exactly one
// booking. Redeliveries of the same session settle as OutcomeDuplicate.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) (Outcome, error) {
	event, err := s.gateway.ParseEvent(payload, signature)
	if err != nil {
		s.log.Warn("webhook signature verification failed", zap.Error(err))
		return "", ErrInvalidSignature
	}

	log := s.log.With(zap.String("event_id", event.ID), zap.String("event_type", event.Type))
	if event.Type != domain.EventCheckoutSessionCompleted {
		log.Debug("webhook event ignored")
		return OutcomeIgnored, nil
	}
	if event.SessionID == "" {
		log.Warn("completed event without a checkout session")
		return OutcomeIgnored, nil
	}
	log = log.With(zap.String("session_id", event.SessionID))

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	session, err := s.gateway.GetSession(fetchCtx, event.SessionID)
	cancel()
	if err != nil {
		log.Error("retrieve checkout session failed", zap.Error(err))
		return "", apperr.Wrap(apperr.ErrUpstream, "retrieve checkout session", err)
	}
	if session.PaymentStatus != domain.PaymentStatusPaid {
		log.Info("checkout session not paid", zap.String("payment_status", session.PaymentStatus))
		return OutcomeUnpaid, nil
	}

	if s.locker != nil {
		release, err := s.locker.Lock(ctx, "checkout-session:"+session.ID)
		if err != nil {
			log.Error("session lock failed", zap.Error(err))
			return "", apperr.Wrap(apperr.ErrUpstream, "lock checkout session", err)
		}
		defer release()
	}

	booking, outcome, err := s.record(ctx, session)
	if err != nil {
		log.Error("record booking failed", zap.Error(err))
		return "", err
	}
	if outcome == OutcomeDuplicate {
		log.Info("booking already recorded")
		return OutcomeDuplicate, nil
	}

	log.Info("booking recorded", zap.String("booking_id", booking.ID), zap.String("user_id", booking.UserID))

	// the request may be gone by now; downstream calls get their own deadline
	after := context.WithoutCancel(ctx)
	s.notify(after, log, booking, session)
	s.publish(after, log, booking)

	return OutcomeRecorded, nil
}

func (s *Service) record(ctx context.Context, session *domain.SessionDetail) (*domain.Booking, Outcome, error) {
	if _, err := s.bookings.GetBySessionID(ctx, session.ID); err == nil {
		return nil, OutcomeDuplicate, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("find booking by session: %w", err)
	}

	b := bookingFromSession(session, s.now())
	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, OutcomeDuplicate, nil
		}
		return nil, "", fmt.Errorf("insert booking: %w", err)
	}
	return b, OutcomeRecorded, nil
}

func bookingFromSession(d *domain.SessionDetail, now time.Time) *domain.Booking {
	meta := d.Metadata
	userID := meta[domain.MetaUserID]
	if userID == "" {
		userID = domain.GuestUserID
	}
	email := d.CustomerEmail
	if email == "" {
		email = fallbackEmail
	}
	return &domain.Booking{
		SessionID:     d.ID,
		UserID:        userID,
		CarID:         meta[domain.MetaCarID],
		PickupDate:    meta[domain.MetaPickupDate],
		DropoffDate:   meta[domain.MetaDropoffDate],
		PickupTime:    meta[domain.MetaPickupTime],
		DropoffTime:   meta[domain.MetaDropoffTime],
		Location:      meta[domain.MetaLocation],
		Amount:        float64(d.AmountTotal) / 100,
		Currency:      d.Currency,
		Status:        domain.BookingPaid,
		CustomerEmail: email,
		CreatedAt:     now,
	}
}

func confirmationFor(b *domain.Booking, d *domain.SessionDetail) notification.BookingConfirmation {
	name := d.CustomerName
	if name == "" {
		name = fallbackName
	}
	carMake := d.Metadata[domain.MetaCarMake]
	if carMake == "" {
		carMake = d.ProductName
	}
	carModel := d.Metadata[domain.MetaCarModel]
	if carModel == "" {
		carModel = d.ProductDescription
	}
	return notification.BookingConfirmation{
		CustomerName: name,
		SessionID:    b.SessionID,
		CarMake:      carMake,
		CarModel:     carModel,
		PickupDate:   b.PickupDate,
		DropoffDate:  b.DropoffDate,
		PickupTime:   b.PickupTime,
		DropoffTime:  b.DropoffTime,
		Location:     b.Location,
		Amount:       b.Amount,
		Currency:     b.Currency,
	}
}

// notify and publish never fail the delivery: the booking is already stored.
func (s *Service) notify(ctx context.Context, log *zap.Logger, b *domain.Booking, d *domain.SessionDetail) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.mailer.SendBookingConfirmation(ctx, b.CustomerEmail, confirmationFor(b, d)); err != nil {
		log.Warn("confirmation email failed", zap.String("to", b.CustomerEmail), zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, log *zap.Logger, b *domain.Booking) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.events.PublishBookingRecorded(ctx, events.NewBookingRecorded(b)); err != nil {
		log.Warn("publish booking event failed", zap.Error(err))
	}
}
