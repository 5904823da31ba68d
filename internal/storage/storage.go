// Package storage opens the configured backend and exposes its stores behind
// one set of interfaces.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/kovidbehl97/vroomtest/internal/database"
	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/mongostore"
	"github.com/kovidbehl97/vroomtest/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CarStore interface {
	Create(ctx context.Context, c *domain.Car) error
	GetByID(ctx context.Context, id string) (*domain.Car, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Car, error)
	List(ctx context.Context, f domain.CarFilter) ([]domain.Car, int64, error)
	Update(ctx context.Context, id string, patch domain.CarPatch) (*domain.Car, error)
	Delete(ctx context.Context, id string) error
}

type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, int64, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
}

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

var (
	_ CarStore     = (*repository.CarRepository)(nil)
	_ BookingStore = (*repository.BookingRepository)(nil)
	_ UserStore    = (*repository.UserRepository)(nil)
	_ CarStore     = (*mongostore.CarStore)(nil)
	_ BookingStore = (*mongostore.BookingStore)(nil)
	_ UserStore    = (*mongostore.UserStore)(nil)
)

type Stores struct {
	Kind     database.Kind
	Cars     CarStore
	Bookings BookingStore
	Users    UserStore
	close    func(ctx context.Context) error
}

func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

type Options struct {
	DatabaseURL string
	MongoDB     string
	Timeout     time.Duration
	// Migrate runs schema migration or index creation after connecting.
	Migrate bool
}

// Open connects to the backend selected by opts.DatabaseURL.
func Open(ctx context.Context, opts Options, log *zap.Logger) (*Stores, error) {
	kind := database.KindOf(opts.DatabaseURL)
	if kind == database.KindMongo {
		return openMongo(ctx, opts, log)
	}
	return openSQL(opts, kind, log)
}

func openSQL(opts Options, kind database.Kind, log *zap.Logger) (*Stores, error) {
	db, err := database.Shared(opts.DatabaseURL, log).Get()
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", kind, err)
	}
	if opts.Migrate {
		if err := repository.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return FromGorm(db, kind), nil
}

// FromGorm wraps an already open gorm handle.
func FromGorm(db *gorm.DB, kind database.Kind) *Stores {
	return &Stores{
		Kind:     kind,
		Cars:     repository.NewCarRepository(db),
		Bookings: repository.NewBookingRepository(db),
		Users:    repository.NewUserRepository(db),
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func openMongo(ctx context.Context, opts Options, log *zap.Logger) (*Stores, error) {
	lazy := database.NewLazy(func() (*mongo.Client, error) {
		return mongostore.NewClient(ctx, opts.DatabaseURL, opts.Timeout)
	})
	client, err := lazy.Get()
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	log.Info("connected to MongoDB", zap.String("database", opts.MongoDB))

	db := client.Database(opts.MongoDB)
	if opts.Migrate {
		ictx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
		if err := mongostore.EnsureIndexes(ictx, db); err != nil {
			return nil, err
		}
	}

	return &Stores{
		Kind:     database.KindMongo,
		Cars:     mongostore.NewCarStore(db),
		Bookings: mongostore.NewBookingStore(db),
		Users:    mongostore.NewUserStore(db),
		close:    client.Disconnect,
	}, nil
}
