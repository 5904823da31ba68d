package notification

import (
	"context"

	"go.uber.org/zap"
)

// ConsoleMailer logs emails instead of sending them. Used when no SMTP host
// is configured.
type ConsoleMailer struct {
	log *zap.Logger
}

func NewConsoleMailer(log *zap.Logger) *ConsoleMailer {
	return &ConsoleMailer{log: log}
}

func (m *ConsoleMailer) SendBookingConfirmation(_ context.Context, to string, b BookingConfirmation) error {
	m.log.Info("[DEV-EMAIL] booking confirmation",
		zap.String("to", to),
		zap.String("subject", confirmationSubject),
		zap.String("session_id", b.SessionID),
		zap.String("car", b.CarMake+" "+b.CarModel),
		zap.Float64("amount", b.Amount),
	)
	return nil
}
