package catalog

import (
	"net/http"
	"strconv"

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/cars", h.ListCars)
	rg.GET("/cars/:id", h.GetCar)
}

// RegisterAdminRoutes expects rg to run JWTAuth. The service repeats the
// admin check, so the routes stay safe behind plain auth too.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/cars", h.CreateCar)
	rg.PUT("/cars/:id", h.UpdateCar)
	rg.DELETE("/cars/:id", h.DeleteCar)
}

// ListCars handles GET /cars?search=&carType=&transmission=&page=&limit=
func (h *Handler) ListCars(c *gin.Context) {
	q := ListQuery{
		Search:       c.Query("search"),
		CarType:      c.Query("carType"),
		Transmission: c.Query("transmission"),
	}
	// malformed numbers fall back to the defaults
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		q.Limit = v
	}

	res, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetCar(c *gin.Context) {
	car, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, car)
}

func (h *Handler) CreateCar(c *gin.Context) {
	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body")
		return
	}

	car, err := h.service.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, car)
}

func (h *Handler) UpdateCar(c *gin.Context) {
	var req UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body")
		return
	}

	if _, err := h.service.Update(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), req); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Car updated successfully")
}

func (h *Handler) DeleteCar(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Car deleted successfully")
}
