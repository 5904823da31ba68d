package booking

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

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

// RegisterUserRoutes expects rg to run JWTAuth.
func (h *Handler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/me", h.ListMine)
	rg.GET("/bookings/:id", h.GetBooking)
}

// RegisterAdminRoutes expects rg to run JWTAuth and AdminOnly.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListAll)
	rg.GET("/bookings/export", h.Export)
}

func (h *Handler) ListMine(c *gin.Context) {
	bookings, err := h.service.ListMine(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.Get(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	res, err := h.service.List(c.Request.Context(), middleware.PrincipalFrom(c), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Export(c *gin.Context) {
	rows, err := h.service.Export(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	// buffered so a write failure can still become a JSON error
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rows); err != nil {
		response.FromError(c, err)
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
