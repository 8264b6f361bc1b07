package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, manages operators and resync
	RoleOperator Role = "operador" // Front desk: employees, sync, reports
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleOperator),
}

// User is a back-office operator. Employees tracked by the terminal are not users.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if the operator has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
