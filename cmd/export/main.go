// Command export writes every booking to an xlsx file.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/kovidbehl97/vroomtest/internal/config"
	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/modules/booking"
	"github.com/kovidbehl97/vroomtest/internal/pkg/logger"
	"github.com/kovidbehl97/vroomtest/internal/storage"
	"go.uber.org/zap"
)

func main() {
	out := flag.String("out", "bookings.xlsx", "output file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	stores, err := storage.Open(ctx, storage.Options{
		DatabaseURL: cfg.DatabaseURL,
		MongoDB:     cfg.MongoDB,
		Timeout:     cfg.UpstreamTimeout,
	}, zlog)
	if err != nil {
		zlog.Fatal("storage init failed", zap.Error(err))
	}
	defer func() { _ = stores.Close(context.Background()) }()

	// the command runs with operator rights
	operator := &domain.Principal{UserID: "cli", Role: domain.RoleAdmin}
	rows, err := booking.NewService(stores.Bookings, stores.Cars, zlog).Export(ctx, operator)
	if err != nil {
		zlog.Fatal("load bookings failed", zap.Error(err))
	}

	f, err := os.Create(*out)
	if err != nil {
		zlog.Fatal("create output failed", zap.Error(err))
	}
	if err := booking.WriteXLSX(f, rows); err != nil {
		_ = f.Close()
		zlog.Fatal("write xlsx failed", zap.Error(err))
	}
	if err := f.Close(); err != nil {
		zlog.Fatal("close output failed", zap.Error(err))
	}
	zlog.Info("bookings exported", zap.String("file", *out), zap.Int("rows", len(rows)))
}
