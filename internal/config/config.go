package config

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultWebhookSecret = "whsec_change_me"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"dev"`
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	DatabaseURL string `envconfig:"DATABASE_URL" default:"vroomify.db"`
	MongoDB     string `envconfig:"MONGO_DB" default:"cars"`

	JWTSecret      string        `envconfig:"JWT_SECRET" default:"change-me-jwt-secret"`
	JWTTTL         time.Duration `envconfig:"JWT_TTL" default:"24h"`
	CookieName     string        `envconfig:"COOKIE_NAME" default:"session_token"`
	CookieSecure   bool          `envconfig:"COOKIE_SECURE" default:"false"`
	CookieSameSite string        `envconfig:"COOKIE_SAMESITE" default:"Lax"`

	AppBaseURL         string   `envconfig:"APP_BASE_URL" default:"http://localhost:3000"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" default:"whsec_change_me"`
	Currency            string `envconfig:"CURRENCY" default:"usd"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	MailFrom     string `envconfig:"MAIL_FROM" default:"checkouts@vroomify.publicvm.com"`

	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `envconfig:"GOOGLE_REDIRECT_URL" default:"http://localhost:8080/api/v1/auth/google/callback"`

	CloudinaryURL string `envconfig:"CLOUDINARY_URL"`
	UploadDir     string `envconfig:"UPLOAD_DIR" default:"./uploads"`

	RedisAddr         string   `envconfig:"REDIS_ADDR"`
	KafkaBrokers      []string `envconfig:"KAFKA_BROKERS"`
	KafkaBookingTopic string   `envconfig:"KAFKA_BOOKING_TOPIC" default:"booking.recorded"`

	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using process environment")
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	cfg.AppBaseURL = strings.TrimRight(strings.TrimSpace(cfg.AppBaseURL), "/")

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be > 0")
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.CookieName == "" {
		return fmt.Errorf("COOKIE_NAME must not be empty")
	}
	sameSite := strings.ToLower(strings.TrimSpace(cfg.CookieSameSite))
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}

	if cfg.IsProdLike() {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.StripeWebhookSecret, defaultWebhookSecret) {
			return fmt.Errorf("in prod/release STRIPE_WEBHOOK_SECRET must be set and not default")
		}
		if strings.TrimSpace(cfg.StripeSecretKey) == "" {
			return fmt.Errorf("in prod/release STRIPE_SECRET_KEY must be set")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func (c *Config) IsProdLike() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

// SameSite converts COOKIE_SAMESITE to its net/http value.
func (c *Config) SameSite() http.SameSite {
	switch strings.ToLower(strings.TrimSpace(c.CookieSameSite)) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}

func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
