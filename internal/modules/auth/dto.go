package auth

import "github.com/kovidbehl97/vroomtest/internal/domain"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserPublic struct {
	ID    string          `json:"_id"`
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  domain.UserRole `json:"role"`
}

func toPublic(u *domain.User) UserPublic {
	return UserPublic{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

type LoginResponse struct {
	User  UserPublic `json:"user"`
	Token string     `json:"token"`
}

// OAuthProfile is the identity an external provider vouches for.
type OAuthProfile struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}
