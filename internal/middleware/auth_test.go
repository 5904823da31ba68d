package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCookie = "session_token"

func init() {
	gin.SetMode(gin.TestMode)
}

func TestJWTAuth_ValidBearerToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour)
	validToken, err := jwtService.GenerateToken("u-42", "ann@example.com", "user")
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuth(jwtService, testCookie))
	router.GET("/protected", func(c *gin.Context) {
		p := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID, "role": p.Role})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"u-42","role":"user"}`, w.Body.String())
}

func TestJWTAuth_ValidCookie(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, err := jwtService.GenerateToken("u-7", "bo@example.com", "admin")
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuth(jwtService, testCookie))
	router.GET("/protected", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-7", w.Body.String())
}

func TestJWTAuth_Rejections(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	foreign, err := jwt.New("other-secret", time.Hour).GenerateToken("u-1", "x@y.z", "admin")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"no token", "", "AUTH_HEADER_MISSING"},
		{"wrong scheme", "Basic dGVzdA==", "INVALID_AUTH_FORMAT"},
		{"garbage token", "Bearer invalid-jwt-here", "INVALID_TOKEN"},
		{"foreign signature", "Bearer " + foreign, "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(JWTAuth(jwtService, testCookie))
			router.GET("/protected", func(c *gin.Context) {
				t.Fatal("handler should not be reached")
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, err := jwtService.GenerateToken("u-9", "c@d.e", "user")
	require.NoError(t, err)

	router := gin.New()
	router.Use(OptionalAuth(jwtService, testCookie))
	router.GET("/maybe", func(c *gin.Context) {
		if p := PrincipalFrom(c); p != nil {
			c.String(http.StatusOK, p.UserID)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	for header, want := range map[string]string{
		"":                    "anonymous",
		"Bearer not-a-token":  "anonymous",
		"Bearer " + token:     "u-9",
		"Token something-odd": "anonymous",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, w.Body.String(), "header %q", header)
	}
}

func TestRequireRole(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	adminToken, _ := jwtService.GenerateToken("a-1", "admin@example.com", string(domain.RoleAdmin))
	userToken, _ := jwtService.GenerateToken("u-1", "user@example.com", string(domain.RoleUser))

	router := gin.New()
	router.Use(OptionalAuth(jwtService, testCookie))
	router.DELETE("/cars/:id", AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for token, want := range map[string]int{
		"":         http.StatusForbidden,
		userToken:  http.StatusForbidden,
		adminToken: http.StatusNoContent,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/cars/1", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code)
	}
}

func TestRequestLogger_RecoversPanic(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(zap.NewNop()))
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.Equal(t, "rid-1", w.Header().Get("X-Request-ID"))
}
