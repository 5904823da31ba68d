package auth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/pkg/apperr"
	"github.com/kovidbehl97/vroomtest/internal/pkg/validator"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service contains all business logic for authentication
type Service struct {
	users UserStore
	jwt   TokenIssuer
	log   *zap.Logger
}

type LoginResult struct {
	User  *domain.User
	Token string
}

func NewService(users UserStore, jwt TokenIssuer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{users: users, jwt: jwt, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validationError(v any) error {
	errs := validator.Validate(v)
	if len(errs) == 0 {
		return nil
	}
	fields := make([]string, 0, len(errs))
	for f, tag := range errs {
		fields = append(fields, f+" ("+tag+")")
	}
	sort.Strings(fields)
	return apperr.Newf(apperr.ErrInvalidInput, "invalid fields: %s", strings.Join(fields, ", "))
}

// Register creates a credentials account with role user.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validationError(req); err != nil {
		return nil, err
	}

	if err := s.validateEmailUnique(ctx, req.Email); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Provider:     domain.ProviderCredentials,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a race against a concurrent registration
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// OAuth-only accounts have no password to compare
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// SignInOAuth creates the account on first sign-in. Existing accounts keep
// their role.
func (s *Service) SignInOAuth(ctx context.Context, profile *OAuthProfile) (*LoginResult, error) {
	if !profile.EmailVerified {
		return nil, ErrUnverifiedEmail
	}
	email := normalizeEmail(profile.Email)

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		user, err = s.createOAuthUser(ctx, email, profile.Name)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}

	return s.issue(user)
}

func (s *Service) createOAuthUser(ctx context.Context, email, name string) (*domain.User, error) {
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	user := &domain.User{
		Email:    email,
		Name:     name,
		Role:     domain.RoleUser,
		Provider: domain.ProviderGoogle,
	}
	err := s.users.Create(ctx, user)
	if errors.Is(err, domain.ErrDuplicate) {
		return s.users.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user created from google sign-in", zap.String("user_id", user.ID))
	return user, nil
}

func (s *Service) Me(ctx context.Context, p *domain.Principal) (*domain.User, error) {
	if err := domain.Authorize(p, ""); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) issue(user *domain.User) (*LoginResult, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	user.PasswordHash = ""
	return &LoginResult{User: user, Token: token}, nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return ErrEmailAlreadyExists
	}
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
