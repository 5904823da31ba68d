package payment

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kovidbehl97/vroomtest/internal/pkg/response"
)

// Stripe payloads stay well below this.
const maxWebhookBody = 1 << 16

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook", h.Webhook)
}

// Webhook reads the raw body untouched; the signature is computed over it.
func (h *Handler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Unable to read request body")
		return
	}

	outcome, err := h.service.HandleWebhook(c.Request.Context(), body, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Webhook signature verification failed")
			return
		}
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"received": true,
		"outcome":  outcome,
	})
}
