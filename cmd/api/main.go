package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kovidbehl97/vroomtest/internal/config"
	"github.com/kovidbehl97/vroomtest/internal/events"
	"github.com/kovidbehl97/vroomtest/internal/lock"
	"github.com/kovidbehl97/vroomtest/internal/modules/auth"
	"github.com/kovidbehl97/vroomtest/internal/modules/booking"
	"github.com/kovidbehl97/vroomtest/internal/modules/catalog"
	"github.com/kovidbehl97/vroomtest/internal/modules/checkout"
	"github.com/kovidbehl97/vroomtest/internal/modules/payment"
	"github.com/kovidbehl97/vroomtest/internal/modules/upload"
	"github.com/kovidbehl97/vroomtest/internal/notification"
	"github.com/kovidbehl97/vroomtest/internal/pkg/imagestore"
	jwtsvc "github.com/kovidbehl97/vroomtest/internal/pkg/jwt"
	"github.com/kovidbehl97/vroomtest/internal/pkg/logger"
	"github.com/kovidbehl97/vroomtest/internal/pkg/stripepay"
	"github.com/kovidbehl97/vroomtest/internal/server"
	"github.com/kovidbehl97/vroomtest/internal/storage"
)

const shutdownTimeout = 15 * time.Second

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

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := storage.Open(ctx, storage.Options{
		DatabaseURL: cfg.DatabaseURL,
		MongoDB:     cfg.MongoDB,
		Timeout:     cfg.UpstreamTimeout,
		Migrate:     true,
	}, zlog)
	if err != nil {
		zlog.Fatal("storage init failed", zap.Error(err))
	}
	zlog.Info("storage ready", zap.String("backend", string(stores.Kind)))

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	gateway := stripepay.New(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	mailer := newMailer(cfg, zlog)
	publisher := newPublisher(cfg, zlog)
	defer func() { _ = publisher.Close() }()

	locker, redisClient := newLocker(cfg, zlog)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	images, uploadDir := newImageStore(cfg, zlog)

	var google auth.OAuthProvider
	if cfg.GoogleEnabled() {
		google = auth.NewGoogleProvider(auth.GoogleConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Timeout:      cfg.UpstreamTimeout,
		})
	}

	authHandler := auth.NewHandler(
		auth.NewService(stores.Users, j, zlog),
		auth.CookieConfig{
			Name:     cfg.CookieName,
			Secure:   cfg.CookieSecure,
			SameSite: cfg.SameSite(),
			TTL:      cfg.JWTTTL,
		},
		google,
		cfg.AppBaseURL,
		zlog,
	)

	checkoutService := checkout.NewService(stores.Cars, gateway, checkout.Config{
		Currency:       cfg.Currency,
		BaseURL:        cfg.AppBaseURL,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Timeout:        cfg.UpstreamTimeout,
	}, zlog)

	paymentService := payment.NewService(gateway, stores.Bookings, payment.Options{
		Mailer:    mailer,
		Publisher: publisher,
		Locker:    locker,
		Timeout:   cfg.UpstreamTimeout,
		Logger:    zlog,
	})

	router := server.NewRouter(server.Handlers{
		Auth:     authHandler,
		Catalog:  catalog.NewHandler(catalog.NewService(stores.Cars, zlog)),
		Checkout: checkout.NewHandler(checkoutService),
		Payment:  payment.NewHandler(paymentService),
		Booking:  booking.NewHandler(booking.NewService(stores.Bookings, stores.Cars, zlog)),
		Upload:   upload.NewHandler(upload.NewService(images, zlog)),
	}, server.Options{
		JWT:            j,
		CookieName:     cfg.CookieName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		UploadDir:      uploadDir,
		Logger:         zlog,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zlog.Info("http server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("http shutdown failed", zap.Error(err))
	}
	if err := stores.Close(shutdownCtx); err != nil {
		zlog.Error("storage close failed", zap.Error(err))
	}
}

func newMailer(cfg *config.Config, zlog *zap.Logger) notification.Mailer {
	if !cfg.SMTPEnabled() {
		zlog.Warn("SMTP_HOST not set, confirmation emails are logged only")
		return notification.NewConsoleMailer(zlog)
	}
	return notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	}, zlog)
}

func newPublisher(cfg *config.Config, zlog *zap.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NopPublisher{}
	}
	zlog.Info("publishing booking events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaBookingTopic))
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
}

// newLocker falls back to an in-process lock when Redis is not configured;
// the unique session index still holds across replicas.
func newLocker(cfg *config.Config, zlog *zap.Logger) (lock.Locker, *goredislib.Client) {
	if cfg.RedisAddr == "" {
		return lock.NewLocalLocker(), nil
	}
	client := goredislib.NewClient(&goredislib.Options{Addr: cfg.RedisAddr})
	zlog.Info("using redis session lock", zap.String("addr", cfg.RedisAddr))
	return lock.NewRedisLocker(client, 30*time.Second), client
}

func newImageStore(cfg *config.Config, zlog *zap.Logger) (imagestore.Store, string) {
	if cfg.CloudinaryURL != "" {
		store, err := imagestore.NewCloudinary(cfg.CloudinaryURL, "cars", cfg.UpstreamTimeout)
		if err != nil {
			zlog.Fatal("cloudinary init failed", zap.Error(err))
		}
		return store, ""
	}
	store, err := imagestore.NewLocalDisk(cfg.UploadDir, "/static/uploads")
	if err != nil {
		zlog.Fatal("upload dir init failed", zap.Error(err))
	}
	zlog.Warn("CLOUDINARY_URL not set, storing uploads on local disk", zap.String("dir", cfg.UploadDir))
	return store, cfg.UploadDir
}
