package notification

import (
	"context"
	"errors"
	"fmt"

	circuit "github.com/rubyist/circuitbreaker"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// ErrMailerUnavailable is returned while the breaker is open after repeated
// SMTP failures.
var ErrMailerUnavailable = errors.New("mailer temporarily unavailable")

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	cfg     SMTPConfig
	breaker *circuit.Breaker
	log     *zap.Logger
}

func NewSMTPMailer(cfg SMTPConfig, log *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:     cfg,
		breaker: circuit.NewConsecutiveBreaker(5),
		log:     log,
	}
}

func (m *SMTPMailer) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	return opts
}

func (m *SMTPMailer) buildMessage(to string, b BookingConfirmation) (*mail.Msg, error) {
	body, err := renderConfirmation(b)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	msg.Subject(confirmationSubject)
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}

func (m *SMTPMailer) SendBookingConfirmation(ctx context.Context, to string, b BookingConfirmation) error {
	msg, err := m.buildMessage(to, b)
	if err != nil {
		return err
	}

	err = m.breaker.Call(func() error {
		client, err := mail.NewClient(m.cfg.Host, m.clientOptions()...)
		if err != nil {
			return err
		}
		return client.DialAndSendWithContext(ctx, msg)
	}, 0)
	if errors.Is(err, circuit.ErrBreakerOpen) {
		return ErrMailerUnavailable
	}
	if err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}

	m.log.Info("confirmation email sent", zap.String("to", to), zap.String("session_id", b.SessionID))
	return nil
}
