package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/middleware"
	"github.com/kovidbehl97/vroomtest/internal/pkg/jwt"
	"github.com/kovidbehl97/vroomtest/internal/repository"
	"github.com/kovidbehl97/vroomtest/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type env struct {
	router *gin.Engine
	jwt    *jwt.Service
	car    domain.Car
	ids    map[string]string
}

func setupRouter(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	require.NoError(t, repository.Migrate(db))
	cars := repository.NewCarRepository(db)
	bookings := repository.NewBookingRepository(db)

	ctx := context.Background()
	car := domain.Car{Make: "Toyota", Model: "Corolla", Year: 2022, Price: 50, CarType: domain.CarSedan, Transmission: domain.TransmissionAutomatic}
	require.NoError(t, cars.Create(ctx, &car))

	ids := map[string]string{}
	for i, owner := range []string{"u-1", "u-1", "u-2"} {
		b := sampleBooking("", owner, car.ID)
		b.SessionID = "cs_" + string(rune('a'+i))
		b.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
		require.NoError(t, bookings.Create(ctx, &b))
		ids[b.SessionID] = b.ID
	}

	jwtSvc := jwt.New("test-secret", time.Hour)
	h := NewHandler(NewService(bookings, cars, zap.NewNop()))

	r := gin.New()
	v1 := r.Group("/api/v1")
	authed := v1.Group("", middleware.JWTAuth(jwtSvc, "session_token"))
	h.RegisterUserRoutes(authed)
	h.RegisterAdminRoutes(authed.Group("/admin", middleware.AdminOnly()))

	return &env{router: r, jwt: jwtSvc, car: car, ids: ids}
}

func (e *env) get(t *testing.T, path, userID string, role domain.UserRole) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != "" {
		token, err := e.jwt.GenerateToken(userID, userID+"@example.com", string(role))
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_ListMine(t *testing.T) {
	e := setupRouter(t)

	rr := e.get(t, "/api/v1/bookings/me", "u-1", domain.RoleUser)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got []domain.BookingWithCar
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "cs_b", got[0].SessionID)
	require.NotNil(t, got[0].Car)
	assert.Equal(t, e.car.ID, got[0].Car.ID)

	rr = e.get(t, "/api/v1/bookings/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandler_GetBooking(t *testing.T) {
	e := setupRouter(t)
	id := e.ids["cs_a"]

	assert.Equal(t, http.StatusOK, e.get(t, "/api/v1/bookings/"+id, "u-1", domain.RoleUser).Code)
	assert.Equal(t, http.StatusOK, e.get(t, "/api/v1/bookings/"+id, "a-1", domain.RoleAdmin).Code)
	assert.Equal(t, http.StatusForbidden, e.get(t, "/api/v1/bookings/"+id, "u-2", domain.RoleUser).Code)
	assert.Equal(t, http.StatusNotFound, e.get(t, "/api/v1/bookings/unknown", "u-1", domain.RoleUser).Code)
}

func TestHandler_AdminRoutes(t *testing.T) {
	e := setupRouter(t)

	rr := e.get(t, "/api/v1/admin/bookings?page=1&limit=2", "a-1", domain.RoleAdmin)
	require.Equal(t, http.StatusOK, rr.Code)
	var res ListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Len(t, res.Bookings, 2)
	assert.EqualValues(t, 3, res.Total)

	rr = e.get(t, "/api/v1/admin/bookings/export", "a-1", domain.RoleAdmin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, xlsxContentType, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment; filename=bookings-")
	assert.NotZero(t, rr.Body.Len())

	assert.Equal(t, http.StatusForbidden, e.get(t, "/api/v1/admin/bookings", "u-1", domain.RoleUser).Code)
	assert.Equal(t, http.StatusForbidden, e.get(t, "/api/v1/admin/bookings/export", "u-1", domain.RoleUser).Code)
}
