package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/pkg/apperr"
	"github.com/kovidbehl97/vroomtest/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has the specified role
func RequireRole(requiredRole domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := domain.Authorize(PrincipalFrom(c), requiredRole); err != nil {
			status, code := apperr.Status(err)
			response.Abort(c, status, code, err.Error())
			return
		}
		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
