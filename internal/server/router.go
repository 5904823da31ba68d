// Package server assembles the HTTP routes of the API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kovidbehl97/vroomtest/internal/middleware"
	"github.com/kovidbehl97/vroomtest/internal/modules/auth"
	"github.com/kovidbehl97/vroomtest/internal/modules/booking"
	"github.com/kovidbehl97/vroomtest/internal/modules/catalog"
	"github.com/kovidbehl97/vroomtest/internal/modules/checkout"
	"github.com/kovidbehl97/vroomtest/internal/modules/payment"
	"github.com/kovidbehl97/vroomtest/internal/modules/upload"
	"github.com/kovidbehl97/vroomtest/internal/pkg/jwt"
	"go.uber.org/zap"
)

// Handlers holds one handler per module. Nil handlers are not mounted.
type Handlers struct {
	Auth     *auth.Handler
	Catalog  *catalog.Handler
	Checkout *checkout.Handler
	Payment  *payment.Handler
	Booking  *booking.Handler
	Upload   *upload.Handler
}

type Options struct {
	JWT            *jwt.Service
	CookieName     string
	AllowedOrigins []string
	// UploadDir is served at /static/uploads when set.
	UploadDir string
	Logger    *zap.Logger
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if opts.UploadDir != "" {
		r.Static("/static/uploads", opts.UploadDir)
	}

	v1 := r.Group("/api/v1")
	optional := v1.Group("", middleware.OptionalAuth(opts.JWT, opts.CookieName))
	protected := v1.Group("", middleware.JWTAuth(opts.JWT, opts.CookieName))
	admin := optional.Group("", middleware.AdminOnly())

	if h.Auth != nil {
		h.Auth.RegisterPublicRoutes(v1)
		h.Auth.RegisterProtectedRoutes(protected)
	}
	if h.Catalog != nil {
		h.Catalog.RegisterPublicRoutes(v1)
		h.Catalog.RegisterAdminRoutes(admin)
	}
	if h.Checkout != nil {
		h.Checkout.RegisterRoutes(optional)
	}
	if h.Payment != nil {
		// Stripe signs the request; there is no session to read
		h.Payment.RegisterPublicRoutes(v1)
	}
	if h.Booking != nil {
		h.Booking.RegisterUserRoutes(protected)
		h.Booking.RegisterAdminRoutes(admin.Group("/admin"))
	}
	if h.Upload != nil {
		h.Upload.RegisterAdminRoutes(admin)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND", "message": "Route not found"})
	})

	return r
}
