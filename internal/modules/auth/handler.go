package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kovidbehl97/vroomtest/internal/middleware"
	"github.com/kovidbehl97/vroomtest/internal/pkg/apperr"
	"github.com/kovidbehl97/vroomtest/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	stateCookie = "oauth_state"
	stateTTL    = 10 * time.Minute
)

type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
	TTL      time.Duration
}

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service    *Service
	cookie     CookieConfig
	google     OAuthProvider
	appBaseURL string
	log        *zap.Logger
}

// NewHandler creates a new auth handler. google may be nil when Google
// sign-in is not configured.
func NewHandler(service *Service, cookie CookieConfig, google OAuthProvider, appBaseURL string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		service:    service,
		cookie:     cookie,
		google:     google,
		appBaseURL: appBaseURL,
		log:        log,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		if h.google != nil {
			authGroup.GET("/google/login", h.GoogleLogin)
			authGroup.GET("/google/callback", h.GoogleCallback)
		}
	}
}

// RegisterProtectedRoutes expects protected to run JWTAuth.
func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.Me)
}

// Register creates a credentials account.
// @Summary	Register
// @Param		request	body	RegisterRequest	true	"email, password, name"
// @Success	201	{object}	UserPublic
// @Failure	400	{object}	map[string]interface{}	"validation error"
// @Failure	409	{object}	map[string]interface{}	"email already registered"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toPublic(user))
}

// Login checks the password and starts a cookie session.
// @Summary	Login
// @Param		request	body	LoginRequest	true	"email, password"
// @Success	200	{object}	LoginResponse
// @Failure	401	{object}	map[string]interface{}	"invalid credentials"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.FromError(c, err)
		return
	}

	h.setSession(c, res.Token)
	response.Success(c, http.StatusOK, LoginResponse{User: toPublic(res.User), Token: res.Token})
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.Message(c, http.StatusOK, "Logged out")
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toPublic(user))
}

// GoogleLogin redirects to the consent screen with a fresh state cookie.
func (h *Handler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, int(stateTTL.Seconds()), "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.google.AuthCodeURL(state))
}

func (h *Handler) GoogleCallback(c *gin.Context) {
	expected, err := c.Cookie(stateCookie)
	if err != nil || expected == "" || c.Query("state") != expected {
		response.FromError(c, ErrInvalidOAuthState)
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", h.cookie.Secure, true)

	code := c.Query("code")
	if code == "" {
		response.Error(c, http.StatusBadRequest, "MISSING_FIELD", "Missing authorization code")
		return
	}

	profile, err := h.google.Profile(c.Request.Context(), code)
	if err != nil {
		h.log.Error("google sign-in failed", zap.Error(err))
		response.FromError(c, apperr.Wrap(apperr.ErrUpstream, "google sign-in failed", err))
		return
	}

	res, err := h.service.SignInOAuth(c.Request.Context(), profile)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.setSession(c, res.Token)
	c.Redirect(http.StatusFound, h.appBaseURL)
}

func (h *Handler) setSession(c *gin.Context, token string) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
}
