package domain

import "github.com/kovidbehl97/vroomtest/internal/pkg/apperr"

// Principal is the identity resolved from a session token.
type Principal struct {
	UserID string
	Email  string
	Role   UserRole
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

var (
	ErrNotAuthenticated = apperr.New(apperr.ErrUnauthenticated, "authentication required")
	ErrAdminRequired    = apperr.New(apperr.ErrForbidden, "admin access required")
	ErrRoleRequired     = apperr.New(apperr.ErrForbidden, "access denied: insufficient permissions")
)

// Authorize is the single capability check used by middleware and services:
// it requires an authenticated principal and, when role is set, that role.
// Admin checks reject a missing principal as forbidden rather than
// unauthenticated.
func Authorize(p *Principal, role UserRole) error {
	if p == nil || p.UserID == "" {
		if role == RoleAdmin {
			return ErrAdminRequired
		}
		return ErrNotAuthenticated
	}
	if role == "" || p.Role == role {
		return nil
	}
	if role == RoleAdmin {
		return ErrAdminRequired
	}
	return ErrRoleRequired
}
