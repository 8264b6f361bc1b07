package device

import (
	"net"

	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/validator"
)

type ConfigureRequest struct {
	IP   string `json:"ip"`
	Port int    `json:"port"`
}

func (r *ConfigureRequest) Validate() error {
	var errs validator.ValidationErrors

	if net.ParseIP(r.IP) == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "ip",
			Message: "ip must be a valid IPv4 or IPv6 address",
		})
	}

	if r.Port == 0 {
		r.Port = 4370 // Default ZKTeco port
	}
	if r.Port < 1 || r.Port > 65535 {
		errs = append(errs, validator.ValidationError{
			Field:   "port",
			Message: "port must be between 1 and 65535",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	UID        int    `json:"uid"`
	TerminalID int    `json:"user_id"`
	Name       string `json:"name"`
	Privilege  int    `json:"privilege"`
	CardID     string `json:"card_id,omitempty"`
}

type ListUsersResponse struct {
	Total int            `json:"total"`
	Users []UserResponse `json:"users"`
}

type PunchResponse struct {
	TerminalID int     `json:"user_id"`
	Timestamp  *string `json:"timestamp"`
	StatusCode int     `json:"status"`
	Method     string  `json:"method"`
}

type ListPunchesResponse struct {
	Total   int             `json:"total"`
	Punches []PunchResponse `json:"punches"`
}

type ImportUsersResponse struct {
	TotalUsers int    `json:"total_users"`
	Imported   int    `json:"imported"`
	Existing   int    `json:"existing"`
	Skipped    int    `json:"skipped"`
	Message    string `json:"message"`
}
