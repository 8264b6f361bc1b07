package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUsernameExists         = errors.New("username already registered")
	ErrUserInactive           = errors.New("user is inactive")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
