package auth

import (
	"context"
	"testing"
	"time"

	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/pkg/apperr"
	"github.com/kovidbehl97/vroomtest/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil && u.ID == "" {
		u.ID = "new-user"
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestService(users UserStore) (*Service, *jwt.Service) {
	jwtSvc := jwt.New("test-secret", time.Hour)
	return NewService(users, jwtSvc, zap.NewNop()), jwtSvc
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_Success(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newTestService(repo)

	repo.On("ExistsByEmail", mock.Anything, "ann@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ann@example.com" &&
			u.Role == domain.RoleUser &&
			u.Provider == domain.ProviderCredentials &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
	})).Return(nil)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  Ann@Example.com ",
		Password: "secret1",
		Name:     "Ann",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-user", user.ID)
	assert.Empty(t, user.PasswordHash)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newTestService(repo)

	repo.On("ExistsByEmail", mock.Anything, "ann@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "ann@example.com", Password: "secret1", Name: "Ann"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_LostRace(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newTestService(repo)

	repo.On("ExistsByEmail", mock.Anything, "ann@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "ann@example.com", Password: "secret1", Name: "Ann"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_Validation(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newTestService(repo)

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{name: "bad email", req: RegisterRequest{Email: "not-an-email", Password: "secret1", Name: "Ann"}},
		{name: "short password", req: RegisterRequest{Email: "ann@example.com", Password: "123", Name: "Ann"}},
		{name: "blank name", req: RegisterRequest{Email: "ann@example.com", Password: "secret1", Name: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
	repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	repo := new(mockUserRepo)
	svc, jwtSvc := newTestService(repo)

	user := &domain.User{ID: "u-1", Email: "ann@example.com", Role: domain.RoleAdmin, PasswordHash: hashed(t, "secret1")}
	repo.On("GetByEmail", mock.Anything, "ann@example.com").Return(user, nil)
	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)
	repo.On("GetByEmail", mock.Anything, "google@example.com").Return(&domain.User{ID: "u-2", Email: "google@example.com", Provider: domain.ProviderGoogle}, nil)

	res, err := svc.Login(context.Background(), LoginRequest{Email: "ANN@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Empty(t, res.User.PasswordHash)

	claims, err := jwtSvc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	for _, req := range []LoginRequest{
		{Email: "ann@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "secret1"},
		{Email: "google@example.com", Password: "anything"},
		{Email: "", Password: ""},
	} {
		_, err := svc.Login(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidCredentials, req.Email)
	}
}

func TestSignInOAuth(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newTestService(repo)

	existing := &domain.User{ID: "a-1", Email: "boss@example.com", Role: domain.RoleAdmin}
	repo.On("GetByEmail", mock.Anything, "boss@example.com").Return(existing, nil)
	repo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, domain.ErrNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@example.com" && u.Role == domain.RoleUser && u.Provider == domain.ProviderGoogle && u.PasswordHash == ""
	})).Return(nil)

	res, err := svc.SignInOAuth(context.Background(), &OAuthProfile{Email: "Boss@example.com", EmailVerified: true})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)

	res, err = svc.SignInOAuth(context.Background(), &OAuthProfile{Email: "new@example.com", EmailVerified: true, Name: "Newbie"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, res.User.Role)
	assert.Equal(t, "Newbie", res.User.Name)

	_, err = svc.SignInOAuth(context.Background(), &OAuthProfile{Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrUnverifiedEmail)
}

func TestMe(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newTestService(repo)

	repo.On("GetByID", mock.Anything, "u-1").Return(&domain.User{ID: "u-1", PasswordHash: "x"}, nil)
	repo.On("GetByID", mock.Anything, "gone").Return(nil, domain.ErrNotFound)

	u, err := svc.Me(context.Background(), &domain.Principal{UserID: "u-1"})
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)

	_, err = svc.Me(context.Background(), &domain.Principal{UserID: "gone"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Me(context.Background(), nil)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}
