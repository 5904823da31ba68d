package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kovidbehl97/vroomtest/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"error":   code,
		"message": message,
	})
}

// FromError writes the error body for err. Errors outside the apperr
// taxonomy are reported as a generic internal error.
func FromError(c *gin.Context, err error) {
	status, code := apperr.Status(err)
	message := err.Error()
	if code == "INTERNAL_ERROR" {
		_ = c.Error(err)
		message = http.StatusText(http.StatusInternalServerError)
	}
	Error(c, status, code, message)
}

// Abort writes the error body and stops the handler chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}
