package mongostore

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kovidbehl97/vroomtest/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type carDoc struct {
	ID           string    `bson:"_id"`
	Make         string    `bson:"make"`
	Model        string    `bson:"model"`
	Year         int       `bson:"year"`
	Price        float64   `bson:"price"`
	Mileage      int       `bson:"mileage"`
	CarType      string    `bson:"carType"`
	Transmission string    `bson:"transmission"`
	ImageURL     *string   `bson:"imageUrl"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func (d carDoc) toDomain() domain.Car {
	return domain.Car{
		ID:           d.ID,
		Make:         d.Make,
		Model:        d.Model,
		Year:         d.Year,
		Price:        d.Price,
		Mileage:      d.Mileage,
		CarType:      domain.CarType(d.CarType),
		Transmission: domain.Transmission(d.Transmission),
		ImageURL:     d.ImageURL,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type CarStore struct {
	col *mongo.Collection
}

func NewCarStore(db *mongo.Database) *CarStore {
	return &CarStore{col: db.Collection(carsCollection)}
}

func (s *CarStore) Create(ctx context.Context, c *domain.Car) error {
	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	doc := carDoc{
		ID:           c.ID,
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		Price:        c.Price,
		Mileage:      c.Mileage,
		CarType:      string(c.CarType),
		Transmission: string(c.Transmission),
		ImageURL:     c.ImageURL,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	_, err := s.col.InsertOne(ctx, doc)
	return translate(err)
}

func (s *CarStore) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	var d carDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, translate(err)
	}
	car := d.toDomain()
	return &car, nil
}

func (s *CarStore) GetByIDs(ctx context.Context, ids []string) ([]domain.Car, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return decodeCars(ctx, cur)
}

func carFilter(f domain.CarFilter) bson.M {
	filter := bson.M{}
	if s := strings.TrimSpace(f.Search); s != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"make": re},
			bson.M{"model": re},
		}
	}
	if f.CarType != "" {
		filter["carType"] = string(f.CarType)
	}
	if f.Transmission != "" {
		filter["transmission"] = string(f.Transmission)
	}
	return filter
}

func (s *CarStore) List(ctx context.Context, f domain.CarFilter) ([]domain.Car, int64, error) {
	filter := carFilter(f)

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(f.Offset)).
		SetLimit(int64(f.Limit))
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	cars, err := decodeCars(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return cars, total, nil
}

func carSet(p domain.CarPatch) bson.M {
	set := bson.M{}
	if p.Make != nil {
		set["make"] = *p.Make
	}
	if p.Model != nil {
		set["model"] = *p.Model
	}
	if p.Year != nil {
		set["year"] = *p.Year
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Mileage != nil {
		set["mileage"] = *p.Mileage
	}
	if p.CarType != nil {
		set["carType"] = string(*p.CarType)
	}
	if p.Transmission != nil {
		set["transmission"] = string(*p.Transmission)
	}
	if p.ImageURLSet {
		if p.ImageURL == nil {
			set["imageUrl"] = nil
		} else {
			set["imageUrl"] = *p.ImageURL
		}
	}
	return set
}

func (s *CarStore) Update(ctx context.Context, id string, patch domain.CarPatch) (*domain.Car, error) {
	set := carSet(patch)
	set["updatedAt"] = time.Now().UTC()

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *CarStore) Delete(ctx context.Context, id string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func decodeCars(ctx context.Context, cur *mongo.Cursor) ([]domain.Car, error) {
	defer cur.Close(ctx)
	out := []domain.Car{}
	for cur.Next(ctx) {
		var d carDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}
