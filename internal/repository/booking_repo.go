package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kovidbehl97/vroomtest/internal/domain"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	SessionID     string    `gorm:"column:session_id;not null;uniqueIndex:idx_bookings_session_id"`
	UserID        string    `gorm:"column:user_id;index"`
	CarID         string    `gorm:"column:car_id;index"`
	PickupDate    string    `gorm:"column:pickup_date"`
	DropoffDate   string    `gorm:"column:dropoff_date"`
	PickupTime    string    `gorm:"column:pickup_time"`
	DropoffTime   string    `gorm:"column:dropoff_time"`
	Location      string    `gorm:"column:location"`
	Amount        float64   `gorm:"column:amount"`
	Currency      string    `gorm:"column:currency"`
	Status        string    `gorm:"column:status"`
	CustomerEmail string    `gorm:"column:customer_email"`
	CreatedAt     time.Time `gorm:"column:created_at;index"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) domain.Booking {
	return domain.Booking{
		ID:            m.ID,
		SessionID:     m.SessionID,
		UserID:        m.UserID,
		CarID:         m.CarID,
		PickupDate:    m.PickupDate,
		DropoffDate:   m.DropoffDate,
		PickupTime:    m.PickupTime,
		DropoffTime:   m.DropoffTime,
		Location:      m.Location,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Status:        domain.BookingStatus(m.Status),
		CustomerEmail: m.CustomerEmail,
		CreatedAt:     m.CreatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:            b.ID,
		SessionID:     b.SessionID,
		UserID:        b.UserID,
		CarID:         b.CarID,
		PickupDate:    b.PickupDate,
		DropoffDate:   b.DropoffDate,
		PickupTime:    b.PickupTime,
		DropoffTime:   b.DropoffTime,
		Location:      b.Location,
		Amount:        b.Amount,
		Currency:      b.Currency,
		Status:        string(b.Status),
		CustomerEmail: b.CustomerEmail,
		CreatedAt:     b.CreatedAt,
	}
}

func toDomainBookings(rows []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainBooking(m))
	}
	return out
}

// Create inserts b. A second booking for the same session id fails with
// domain.ErrDuplicate.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*b = toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	b := toDomainBooking(m)
	return &b, nil
}

func (r *BookingRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	b := toDomainBooking(m)
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(rows), nil
}

func (r *BookingRepository) List(ctx context.Context, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []bookingModel
	if err := q.Order("created_at DESC").Order("id ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toDomainBookings(rows), total, nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(rows), nil
}
