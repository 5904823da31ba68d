package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCarReader struct {
	mock.Mock
}

func (m *mockCarReader) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutSession), args.Error(1)
}

func (m *mockGateway) GetSession(ctx context.Context, id string) (*domain.SessionDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionDetail), args.Error(1)
}

func testCar() *domain.Car {
	return &domain.Car{
		ID: "car-1", Make: "Toyota", Model: "Corolla", Year: 2022, Price: 50,
		CarType: domain.CarSedan, Transmission: domain.TransmissionAutomatic,
	}
}

func validRequest() CreateSessionRequest {
	return CreateSessionRequest{
		CarID:       "car-1",
		PickupDate:  "2025-04-20",
		DropoffDate: "2025-04-22",
		PickupTime:  "10:00",
		DropoffTime: "12:00",
		Location:    "Airport Terminal",
	}
}

func newTestService(cars CarReader, gw Gateway) *Service {
	return NewService(cars, gw, Config{
		Currency:       "usd",
		BaseURL:        "https://vroomify.example",
		AllowedOrigins: []string{"http://localhost:3000"},
	}, zap.NewNop())
}

func TestCreateSession_Anonymous(t *testing.T) {
	cars := new(mockCarReader)
	gw := new(mockGateway)
	svc := newTestService(cars, gw)

	cars.On("GetByID", mock.Anything, "car-1").Return(testCar(), nil)
	gw.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(r domain.CheckoutRequest) bool {
		return r.UnitAmount == 10000 &&
			r.Currency == "usd" &&
			r.CustomerEmail == "guest@example.com" &&
			r.ProductName == "Toyota Corolla" &&
			r.ProductDescription == "Car booking for 2022" &&
			r.Metadata[domain.MetaUserID] == domain.GuestUserID &&
			r.Metadata[domain.MetaCarID] == "car-1" &&
			r.Metadata[domain.MetaLocation] == "Airport Terminal" &&
			r.Metadata[domain.MetaPickupTime] == "10:00" &&
			r.SuccessURL == "https://vroomify.example/success?session_id={CHECKOUT_SESSION_ID}" &&
			r.CancelURL == "https://vroomify.example/?canceled=true"
	})).Return(&domain.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/cs_test_1"}, nil)

	session, err := svc.CreateSession(context.Background(), nil, validRequest(), "https://evil.example")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)

	cars.AssertExpectations(t)
	gw.AssertExpectations(t)
}

func TestCreateSession_SignedInUserAndAllowedOrigin(t *testing.T) {
	cars := new(mockCarReader)
	gw := new(mockGateway)
	svc := newTestService(cars, gw)

	cars.On("GetByID", mock.Anything, "car-1").Return(testCar(), nil)
	gw.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(r domain.CheckoutRequest) bool {
		return r.CustomerEmail == "ann@example.com" &&
			r.Metadata[domain.MetaUserID] == "u-1" &&
			r.SuccessURL == "http://localhost:3000/success?session_id={CHECKOUT_SESSION_ID}"
	})).Return(&domain.CheckoutSession{ID: "cs_test_2"}, nil)

	p := &domain.Principal{UserID: "u-1", Email: "ann@example.com", Role: domain.RoleUser}
	_, err := svc.CreateSession(context.Background(), p, validRequest(), "http://localhost:3000")
	require.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestCreateSession_MissingFieldsComeFirst(t *testing.T) {
	cars := new(mockCarReader)
	gw := new(mockGateway)
	svc := newTestService(cars, gw)

	req := validRequest()
	req.CarID = "unknown"
	req.Location = "   "

	_, err := svc.CreateSession(context.Background(), nil, req, "")
	assert.ErrorIs(t, err, apperr.ErrMissingField)
	assert.Contains(t, err.Error(), "location")

	cars.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestCreateSession_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateSessionRequest)
		car    *domain.Car
		carErr error
		kind   error
	}{
		{
			name:   "unknown car",
			mutate: func(r *CreateSessionRequest) { r.CarID = "nope" },
			carErr: domain.ErrNotFound,
			kind:   apperr.ErrNotFound,
		},
		{
			name:   "bad date",
			mutate: func(r *CreateSessionRequest) { r.DropoffDate = "22-04-2025" },
			car:    testCar(),
			kind:   apperr.ErrInvalidInput,
		},
		{
			name:   "dropoff before pickup",
			mutate: func(r *CreateSessionRequest) { r.DropoffDate = "2025-04-19" },
			car:    testCar(),
			kind:   apperr.ErrInvalidInput,
		},
		{
			name:   "unknown location",
			mutate: func(r *CreateSessionRequest) { r.Location = "Moon Base" },
			car:    testCar(),
			kind:   apperr.ErrInvalidInput,
		},
		{
			name:   "car without a price",
			mutate: func(r *CreateSessionRequest) {},
			car:    &domain.Car{ID: "car-1", Make: "Kia", Model: "Rio"},
			kind:   apperr.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cars := new(mockCarReader)
			gw := new(mockGateway)
			svc := newTestService(cars, gw)

			req := validRequest()
			tt.mutate(&req)
			if tt.car != nil {
				cars.On("GetByID", mock.Anything, req.CarID).Return(tt.car, nil)
			} else {
				cars.On("GetByID", mock.Anything, req.CarID).Return(nil, tt.carErr)
			}

			_, err := svc.CreateSession(context.Background(), nil, req, "")
			assert.ErrorIs(t, err, tt.kind)
			gw.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateSession_GatewayFailure(t *testing.T) {
	cars := new(mockCarReader)
	gw := new(mockGateway)
	svc := newTestService(cars, gw)

	cars.On("GetByID", mock.Anything, "car-1").Return(testCar(), nil)
	gw.On("CreateCheckoutSession", mock.Anything, mock.Anything).Return(nil, errors.New("stripe: api key invalid"))

	_, err := svc.CreateSession(context.Background(), nil, validRequest(), "")
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestReceipt(t *testing.T) {
	gw := new(mockGateway)
	svc := newTestService(new(mockCarReader), gw)

	gw.On("GetSession", mock.Anything, "cs_1").Return(&domain.SessionDetail{
		ID:            "cs_1",
		PaymentStatus: "paid",
		AmountTotal:   10000,
		Currency:      "usd",
		CustomerEmail: "ann@example.com",
		CustomerName:  "Ann",
		ProductName:   "Toyota Corolla",
		Metadata:      map[string]string{domain.MetaPickupDate: "2025-04-20", domain.MetaLocation: "Central Station"},
	}, nil)

	r, err := svc.Receipt(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, r.Amount)
	assert.Equal(t, "paid", r.PaymentStatus)
	assert.Equal(t, "Central Station", r.Location)

	_, err = svc.Receipt(context.Background(), " ")
	assert.ErrorIs(t, err, apperr.ErrMissingField)
}
