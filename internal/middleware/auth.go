package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/pkg/jwt"
	"github.com/kovidbehl97/vroomtest/internal/pkg/response"
)

const (
	ctxPrincipal = "principal"
	ctxUserID    = "user_id"
	ctxRole      = "role"
)

// tokenFromRequest prefers the session cookie and falls back to a bearer
// header. ok is false when an Authorization header is present but malformed.
func tokenFromRequest(c *gin.Context, cookieName string) (token string, ok bool) {
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil && v != "" {
			return v, true
		}
	}
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", true
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setPrincipal(c *gin.Context, claims *jwt.Claims) {
	p := &domain.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   domain.UserRole(claims.Role),
	}
	c.Set(ctxPrincipal, p)
	c.Set(ctxUserID, p.UserID)
	c.Set(ctxRole, string(p.Role))
}

// JWTAuth requires a valid session token.
func JWTAuth(jwtSvc *jwt.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := tokenFromRequest(c, cookieName)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be: Bearer <token>")
			return
		}
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authentication required")
			return
		}

		claims, err := jwtSvc.ValidateToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		setPrincipal(c, claims)
		c.Next()
	}
}

// OptionalAuth resolves the identity when a valid token is sent and lets
// anonymous requests through untouched.
func OptionalAuth(jwtSvc *jwt.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := tokenFromRequest(c, cookieName)
		if ok && token != "" {
			if claims, err := jwtSvc.ValidateToken(token); err == nil {
				setPrincipal(c, claims)
			}
		}
		c.Next()
	}
}

// PrincipalFrom returns the identity set by JWTAuth or OptionalAuth, or nil
// for anonymous requests.
func PrincipalFrom(c *gin.Context) *domain.Principal {
	v, ok := c.Get(ctxPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*domain.Principal)
	return p
}
