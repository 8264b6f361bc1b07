package auth

import (
	"context"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/user"
)

type AuthService interface {
	// Login checks operator credentials. clientKey identifies the caller for rate limiting.
	Login(ctx context.Context, req LoginRequest, clientKey string) (TokenResponse, error)

	// Register creates a further operator. Only admins may call it.
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)

	// ChangePassword replaces the password of the calling operator
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error

	// Logout revokes the access token until it expires
	Logout(ctx context.Context, token string) error

	// EnsureAdmin creates the initial admin when no operator exists yet
	EnsureAdmin(ctx context.Context, username, password string) error
}
