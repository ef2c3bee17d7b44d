package identity

import (
	"time"

	"github.com/minimart/backend/internal/domain/identity"
)

// RegisterInput contains input for user registration
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput contains input for credential authentication
type LoginInput struct {
	Email    string
	Password string
}

// LogoutInput contains input for token revocation
type LogoutInput struct {
	TokenJTI string
	TTL      time.Duration
}

// UserResponse is the client-facing user record; the password hash
// never leaves the service layer
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResult carries the issued token and the authenticated user id
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	UserID      string
}

func toUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
