package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/auth"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/device"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/employee"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/user"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTooManyAttempts):
		TooManyRequests(w, "Too many login attempts, try again later")
	case errors.Is(err, auth.ErrInvalidCSRFToken):
		Forbidden(w, "Invalid or missing CSRF token")

	// Operators
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User is inactive")

	// Employees
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDocumentNumberExists):
		Conflict(w, "Document number already registered")
	case errors.Is(err, employee.ErrTerminalIDExists):
		Conflict(w, "Terminal id already assigned to another employee")
	case errors.Is(err, employee.ErrTerminalIDImmutable):
		Conflict(w, "Terminal id cannot be changed once assigned")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is inactive")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, "Employee is already inactive")

	// Schedule values that slipped past DTO validation
	case errors.Is(err, schedule.ErrInvalidWeekday),
		errors.Is(err, schedule.ErrInvalidClock),
		errors.Is(err, schedule.ErrInvalidContractDuration),
		errors.Is(err, schedule.ErrInvalidShift):
		BadRequest(w, err.Error(), nil)

	// Ledger and terminal
	case errors.Is(err, attendance.ErrResyncInProgress):
		Conflict(w, "A full resync is already running")
	case errors.Is(err, device.ErrInvalidAddress):
		BadRequest(w, "Terminal address is invalid", nil)
	case errors.Is(err, device.ErrTerminalUnreachable):
		ServiceUnavailable(w, "Attendance terminal is unreachable")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
