package mongostore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kovidbehl97/vroomtest/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	PasswordHash string    `bson:"password,omitempty"`
	Role         string    `bson:"role"`
	Provider     string    `bson:"provider"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         domain.UserRole(d.Role),
		Provider:     domain.AuthProvider(d.Provider),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection(usersCollection)}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	now := time.Now().UTC()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = normalizeEmail(u.Email)
	u.CreatedAt, u.UpdatedAt = now, now

	_, err := s.col.InsertOne(ctx, userDoc{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Provider:     string(u.Provider),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	})
	return translate(err)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var d userDoc
	if err := s.col.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&d); err != nil {
		return nil, translate(err)
	}
	return d.toDomain(), nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var d userDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, translate(err)
	}
	return d.toDomain(), nil
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"email": normalizeEmail(email)})
	return n > 0, err
}
