package attendance

import (
	"errors"
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// MANUAL OVERRIDE
// ========================================

// ManualOverrideRequest replaces an employee's events on one date. A nil
// entrance or exit removes that side; both nil clears the day.
type ManualOverrideRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`     // YYYY-MM-DD
	Entrance   *string `json:"entrance"` // HH:MM
	Exit       *string `json:"exit"`     // HH:MM
}

// Day returns the overridden date at midnight UTC.
func (r *ManualOverrideRequest) Day() (time.Time, error) {
	day, valid := validator.IsValidDate(r.Date)
	if !valid {
		return time.Time{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return day, nil
}

func (r *ManualOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	var dateErrs validator.ValidationErrors
	if _, err := r.Day(); errors.As(err, &dateErrs) {
		errs = append(errs, dateErrs...)
	}

	// Empty strings are treated as "not provided"
	if r.Entrance != nil && validator.IsEmpty(*r.Entrance) {
		r.Entrance = nil
	}
	if r.Exit != nil && validator.IsEmpty(*r.Exit) {
		r.Exit = nil
	}

	if r.Entrance != nil && !validator.IsValidClock(*r.Entrance) {
		errs = append(errs, validator.ValidationError{
			Field:   "entrance",
			Message: "entrance must be in HH:MM format",
		})
	}
	if r.Exit != nil && !validator.IsValidClock(*r.Exit) {
		errs = append(errs, validator.ValidationError{
			Field:   "exit",
			Message: "exit must be in HH:MM format",
		})
	}

	// HH:MM strings compare lexically
	if len(errs) == 0 && r.Entrance != nil && r.Exit != nil && *r.Entrance >= *r.Exit {
		errs = append(errs, validator.ValidationError{
			Field:   "exit",
			Message: "exit must be after entrance",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ManualOverrideResponse struct {
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"`
	Removed    int64           `json:"removed"`
	Events     []EventResponse `json:"events"`
}

// ========================================
// LEDGER LISTING
// ========================================

type EventFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EventFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 30 // Default limit
	}
	if f.Limit > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 200",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	// YYYY-MM-DD strings compare lexically
	if len(errs) == 0 && f.StartDate != nil && f.EndDate != nil &&
		*f.StartDate != "" && *f.EndDate != "" && *f.EndDate < *f.StartDate {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID        string `json:"id"`
	PunchedAt string `json:"punched_at"`
	Type      string `json:"type"`
	Source    string `json:"source"`
	SyncedAt  string `json:"synced_at"`
}

type ListEventsResponse struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	TotalCount   int64           `json:"total_count"`
	Page         int             `json:"page"`
	Limit        int             `json:"limit"`
	TotalPages   int             `json:"total_pages"`
	Events       []EventResponse `json:"events"`
}

// ========================================
// SYNC
// ========================================

type SyncResponse struct {
	TotalPunches int         `json:"total_punches"`
	Deleted      int64       `json:"deleted,omitempty"`
	Result       MergeResult `json:"result"`
	Message      string      `json:"message"`
}
