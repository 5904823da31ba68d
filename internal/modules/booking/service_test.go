package booking

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingStore) List(ctx context.Context, limit, offset int) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingStore) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockCarReader struct {
	mock.Mock
}

func (m *MockCarReader) GetByIDs(ctx context.Context, ids []string) ([]domain.Car, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Car), args.Error(1)
}

var (
	owner    = &domain.Principal{UserID: "u-1", Role: domain.RoleUser}
	stranger = &domain.Principal{UserID: "u-2", Role: domain.RoleUser}
	admin    = &domain.Principal{UserID: "a-1", Role: domain.RoleAdmin}
)

func sampleBooking(id, userID, carID string) domain.Booking {
	return domain.Booking{
		ID:            id,
		SessionID:     "cs_" + id,
		UserID:        userID,
		CarID:         carID,
		PickupDate:    "2025-04-20",
		DropoffDate:   "2025-04-22",
		PickupTime:    "10:00",
		DropoffTime:   "12:00",
		Location:      "Central Station",
		Amount:        100,
		Currency:      "usd",
		Status:        domain.BookingPaid,
		CustomerEmail: "ann@example.com",
		CreatedAt:     time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestListMine_JoinsCars(t *testing.T) {
	bookings := new(MockBookingStore)
	cars := new(MockCarReader)
	svc := NewService(bookings, cars, zap.NewNop())

	bookings.On("ListByUser", mock.Anything, "u-1").Return([]domain.Booking{
		sampleBooking("b-2", "u-1", "car-1"),
		sampleBooking("b-1", "u-1", "car-gone"),
		sampleBooking("b-0", "u-1", "car-1"),
	}, nil)
	cars.On("GetByIDs", mock.Anything, []string{"car-1", "car-gone"}).
		Return([]domain.Car{{ID: "car-1", Make: "Toyota", Model: "Corolla"}}, nil)

	got, err := svc.ListMine(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b-2", got[0].ID)
	require.NotNil(t, got[0].Car)
	assert.Equal(t, "Corolla", got[0].Car.Model)
	assert.Nil(t, got[1].Car)
	bookings.AssertExpectations(t)
	cars.AssertExpectations(t)
}

func TestListMine_Empty(t *testing.T) {
	bookings := new(MockBookingStore)
	cars := new(MockCarReader)
	svc := NewService(bookings, cars, zap.NewNop())

	bookings.On("ListByUser", mock.Anything, "u-1").Return([]domain.Booking{}, nil)

	got, err := svc.ListMine(context.Background(), owner)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	cars.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)

	_, err = svc.ListMine(context.Background(), nil)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestGet_Visibility(t *testing.T) {
	bookings := new(MockBookingStore)
	cars := new(MockCarReader)
	svc := NewService(bookings, cars, zap.NewNop())

	b := sampleBooking("b-1", "u-1", "car-1")
	bookings.On("GetByID", mock.Anything, "b-1").Return(&b, nil)
	bookings.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
	cars.On("GetByIDs", mock.Anything, []string{"car-1"}).Return([]domain.Car{{ID: "car-1"}}, nil)

	got, err := svc.Get(context.Background(), owner, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "b-1", got.ID)
	assert.NotNil(t, got.Car)

	_, err = svc.Get(context.Background(), admin, "b-1")
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), stranger, "b-1")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.Get(context.Background(), owner, "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_AdminPagination(t *testing.T) {
	bookings := new(MockBookingStore)
	svc := NewService(bookings, new(MockCarReader), zap.NewNop())

	bookings.On("List", mock.Anything, 5, 10).Return([]domain.Booking{sampleBooking("b-1", "u-1", "car-1")}, int64(11), nil)
	bookings.On("List", mock.Anything, defaultLimit, 0).Return([]domain.Booking(nil), int64(0), nil)

	res, err := svc.List(context.Background(), admin, 3, 5)
	require.NoError(t, err)
	assert.Len(t, res.Bookings, 1)
	assert.EqualValues(t, 11, res.Total)

	res, err = svc.List(context.Background(), admin, 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, res.Bookings)

	_, err = svc.List(context.Background(), owner, 1, 10)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestExport_StoreFailure(t *testing.T) {
	bookings := new(MockBookingStore)
	svc := NewService(bookings, new(MockCarReader), zap.NewNop())

	bookings.On("ListAll", mock.Anything).Return([]domain.Booking(nil), errors.New("db down"))

	_, err := svc.Export(context.Background(), admin)
	require.Error(t, err)
	assert.Nil(t, apperr.Kind(err))
}

func TestWriteXLSX(t *testing.T) {
	rows := []domain.BookingWithCar{
		{Booking: sampleBooking("b-1", "u-1", "car-1"), Car: &domain.Car{Make: "Toyota", Model: "Corolla", Year: 2022}},
		{Booking: sampleBooking("b-2", "guest", "car-gone")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rows))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Bookings", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "SessionID", sheet.Rows[0].Cells[1].String())
	assert.Equal(t, "cs_b-1", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "Toyota Corolla (2022)", sheet.Rows[1].Cells[5].String())
	assert.Equal(t, "", sheet.Rows[2].Cells[5].String())
	assert.Equal(t, "guest", sheet.Rows[2].Cells[2].String())
}
