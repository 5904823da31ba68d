package checkout

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kovidbehl97/vroomtest/internal/middleware"
	"github.com/kovidbehl97/vroomtest/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects rg to resolve the caller with middleware.OptionalAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout/sessions", h.CreateSession)
	rg.GET("/checkout/sessions/:id", h.GetReceipt)
}

func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body")
		return
	}

	session, err := h.service.CreateSession(
		c.Request.Context(),
		middleware.PrincipalFrom(c),
		req,
		c.GetHeader("Origin"),
	)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, session)
}

func (h *Handler) GetReceipt(c *gin.Context) {
	receipt, err := h.service.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, receipt)
}
