package auth

import (
	"context"

	"github.com/kovidbehl97/vroomtest/internal/domain"
)

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type TokenIssuer interface {
	GenerateToken(userID, email, role string) (string, error)
}

// OAuthProvider is the authorization-code flow of an external identity
// provider.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Profile(ctx context.Context, code string) (*OAuthProfile, error)
}
