// Package events publishes booking lifecycle events for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/segmentio/kafka-go"
)

const TypeBookingRecorded = "booking.recorded"

type BookingRecorded struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"bookingId"`
	SessionID  string    `json:"sessionId"`
	UserID     string    `json:"userId"`
	CarID      string    `json:"carId"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewBookingRecorded(b *domain.Booking) BookingRecorded {
	return BookingRecorded{
		Type:       TypeBookingRecorded,
		BookingID:  b.ID,
		SessionID:  b.SessionID,
		UserID:     b.UserID,
		CarID:      b.CarID,
		Amount:     b.Amount,
		Currency:   b.Currency,
		OccurredAt: b.CreatedAt,
	}
}

type Publisher interface {
	PublishBookingRecorded(ctx context.Context, e BookingRecorded) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	w messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

// PublishBookingRecorded writes e keyed by session id so redeliveries land on
// the same partition.
func (p *KafkaPublisher) PublishBookingRecorded(ctx context.Context, e BookingRecorded) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.SessionID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishBookingRecorded(context.Context, BookingRecorded) error { return nil }
func (NopPublisher) Close() error                                                  { return nil }
