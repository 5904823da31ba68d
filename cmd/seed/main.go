package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/kovidbehl97/vroomtest/internal/config"
	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/pkg/logger"
	"github.com/kovidbehl97/vroomtest/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var demoCars = []domain.Car{
	{Make: "Toyota", Model: "Corolla", Year: 2022, Price: 50, Mileage: 18000, CarType: domain.CarSedan, Transmission: domain.TransmissionAutomatic},
	{Make: "Honda", Model: "CR-V", Year: 2021, Price: 75, Mileage: 32000, CarType: domain.CarSUV, Transmission: domain.TransmissionAutomatic},
	{Make: "Volkswagen", Model: "Golf", Year: 2020, Price: 45, Mileage: 41000, CarType: domain.CarHatchback, Transmission: domain.TransmissionManual},
	{Make: "Ford", Model: "Explorer", Year: 2023, Price: 95, Mileage: 9000, CarType: domain.CarSUV, Transmission: domain.TransmissionAutomatic},
	{Make: "Hyundai", Model: "Elantra", Year: 2022, Price: 48, Mileage: 21000, CarType: domain.CarSedan, Transmission: domain.TransmissionManual},
	{Make: "Kia", Model: "Rio", Year: 2021, Price: 35, Mileage: 27000, CarType: domain.CarHatchback, Transmission: domain.TransmissionAutomatic},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	stores, err := storage.Open(ctx, storage.Options{
		DatabaseURL: cfg.DatabaseURL,
		MongoDB:     cfg.MongoDB,
		Timeout:     cfg.UpstreamTimeout,
		Migrate:     true,
	}, zlog)
	if err != nil {
		zlog.Fatal("storage init failed", zap.Error(err))
	}
	defer func() { _ = stores.Close(context.Background()) }()

	if err := seedAdmin(ctx, stores.Users, zlog); err != nil {
		zlog.Fatal("seed admin failed", zap.Error(err))
	}
	if err := seedCars(ctx, stores.Cars, zlog); err != nil {
		zlog.Fatal("seed cars failed", zap.Error(err))
	}
	zlog.Info("seed completed")
}

// seedAdmin is the only way to obtain role admin besides editing the
// database directly.
func seedAdmin(ctx context.Context, users storage.UserStore, zlog *zap.Logger) error {
	email := getenv("SEED_ADMIN_EMAIL", "admin@vroomify.local")
	password := getenv("SEED_ADMIN_PASSWORD", "admin123")

	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		zlog.Info("admin already present", zap.String("email", email))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Email:        email,
		Name:         "Administrator",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Provider:     domain.ProviderCredentials,
	}
	if err := users.Create(ctx, admin); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		return err
	}
	zlog.Info("admin created", zap.String("email", email))
	return nil
}

func seedCars(ctx context.Context, cars storage.CarStore, zlog *zap.Logger) error {
	_, total, err := cars.List(ctx, domain.CarFilter{Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		zlog.Info("catalog not empty, skipping demo cars", zap.Int64("cars", total))
		return nil
	}

	for i := range demoCars {
		car := demoCars[i]
		if err := cars.Create(ctx, &car); err != nil {
			return err
		}
	}
	zlog.Info("demo cars created", zap.Int("count", len(demoCars)))
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
