package user

import (
	"errors"
	"time"

	"github.com/safespace/core/internal/models"
)

var (
	errUsernameTaken      = errors.New("username already taken")
	errEmailTaken         = errors.New("email already registered")
	errInvalidCredentials = errors.New("invalid username or password")
	errAccountDisabled    = errors.New("account is deactivated")
	errAccountSuspended   = errors.New("account is suspended")
	errUserNotFound       = errors.New("user not found")
)

type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	SuspendedAt *time.Time `json:"suspended_at,omitempty"`
	Created     time.Time  `json:"created"`
}

func toResponse(u *models.UserModel) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		SuspendedAt: u.SuspendedAt,
		Created:     u.CreatedAt,
	}
}
