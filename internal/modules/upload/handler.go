package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kovidbehl97/vroomtest/internal/middleware"
	"github.com/kovidbehl97/vroomtest/internal/pkg/response"
)

// multipart framing on top of the file itself
const maxRequestBody = MaxImageSize + 1<<20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes expects rg to run JWTAuth and AdminOnly.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/images", h.UploadImage)
}

func (h *Handler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody)

	header, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.FromError(c, ErrTooLarge)
			return
		}
		response.FromError(c, ErrFileRequired)
		return
	}

	f, err := header.Open()
	if err != nil {
		response.FromError(c, ErrFileRequired)
		return
	}
	defer f.Close()

	url, err := h.service.UploadImage(c.Request.Context(), middleware.PrincipalFrom(c), f, header.Size)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"imageUrl": url})
}
