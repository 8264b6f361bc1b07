package auth

import (
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/user"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/validator"
)

const (
	MinPasswordLength = 8

	// bcrypt ignores input past 72 bytes
	MaxPasswordLength = 72
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`

	// Filled from the JWT of the caller, never from the body
	RequestedByAdmin bool `json:"-"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username may only contain letters, numbers, dots, underscores, and hyphens",
		})
	}

	errs = append(errs, validatePassword("password", r.Password)...)

	if validator.IsEmpty(r.Name) {
		r.Name = r.Username
	}

	if validator.IsEmpty(r.Role) {
		r.Role = string(user.RoleOperator)
	} else if !validator.IsInSlice(r.Role, user.RoleValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, operador",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresAt   int64             `json:"expires_at"`
	User        user.UserResponse `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`

	// Filled from the JWT of the caller
	UserID string `json:"-"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
		})
	}
	errs = append(errs, validatePassword("new_password", r.NewPassword)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePassword(field, password string) validator.ValidationErrors {
	switch {
	case validator.IsEmpty(password):
		return validator.ValidationErrors{{Field: field, Message: field + " is required"}}
	case len(password) < MinPasswordLength:
		return validator.ValidationErrors{{Field: field, Message: field + " must be at least 8 characters long"}}
	case len(password) > MaxPasswordLength:
		return validator.ValidationErrors{{Field: field, Message: field + " must not exceed 72 characters"}}
	}
	return nil
}
