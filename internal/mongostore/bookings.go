package mongostore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kovidbehl97/vroomtest/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingDoc struct {
	ID            string    `bson:"_id"`
	SessionID     string    `bson:"sessionId"`
	UserID        string    `bson:"userId"`
	CarID         string    `bson:"carId"`
	PickupDate    string    `bson:"pickupDate"`
	DropoffDate   string    `bson:"dropoffDate"`
	PickupTime    string    `bson:"pickupTime"`
	DropoffTime   string    `bson:"dropoffTime"`
	Location      string    `bson:"location"`
	Amount        float64   `bson:"amount"`
	Currency      string    `bson:"currency"`
	Status        string    `bson:"status"`
	CustomerEmail string    `bson:"customerEmail"`
	CreatedAt     time.Time `bson:"createdAt"`
}

func (d bookingDoc) toDomain() domain.Booking {
	return domain.Booking{
		ID:            d.ID,
		SessionID:     d.SessionID,
		UserID:        d.UserID,
		CarID:         d.CarID,
		PickupDate:    d.PickupDate,
		DropoffDate:   d.DropoffDate,
		PickupTime:    d.PickupTime,
		DropoffTime:   d.DropoffTime,
		Location:      d.Location,
		Amount:        d.Amount,
		Currency:      d.Currency,
		Status:        domain.BookingStatus(d.Status),
		CustomerEmail: d.CustomerEmail,
		CreatedAt:     d.CreatedAt,
	}
}

type BookingStore struct {
	col *mongo.Collection
}

func NewBookingStore(db *mongo.Database) *BookingStore {
	return &BookingStore{col: db.Collection(bookingsCollection)}
}

// Create inserts b. The unique sessionId index turns a second insert for the
// same session into domain.ErrDuplicate.
func (s *BookingStore) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := s.col.InsertOne(ctx, bookingDoc{
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
	})
	return translate(err)
}

func (s *BookingStore) findOne(ctx context.Context, filter bson.M) (*domain.Booking, error) {
	var d bookingDoc
	if err := s.col.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, translate(err)
	}
	b := d.toDomain()
	return &b, nil
}

func (s *BookingStore) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *BookingStore) GetBySessionID(ctx context.Context, sessionID string) (*domain.Booking, error) {
	return s.findOne(ctx, bson.M{"sessionId": sessionID})
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}

func (s *BookingStore) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	cur, err := s.col.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	return decodeBookings(ctx, cur)
}

func (s *BookingStore) List(ctx context.Context, limit, offset int) ([]domain.Booking, int64, error) {
	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(newestFirst).SetSkip(int64(offset)).SetLimit(int64(limit))
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	out, err := decodeBookings(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *BookingStore) ListAll(ctx context.Context) ([]domain.Booking, error) {
	cur, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	return decodeBookings(ctx, cur)
}

func decodeBookings(ctx context.Context, cur *mongo.Cursor) ([]domain.Booking, error) {
	defer cur.Close(ctx)
	out := []domain.Booking{}
	for cur.Next(ctx) {
		var d bookingDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}
