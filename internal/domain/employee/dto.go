package employee

import (
	"strings"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// CREATE
// ========================================

type CreateEmployeeRequest struct {
	TerminalID       *int    `json:"terminal_id,omitempty"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	DocumentNumber   string  `json:"document_number"`
	Position         string  `json:"position"`
	Shift            string  `json:"shift"`
	ExpectedEntrance string  `json:"expected_entrance"` // HH:MM, defaults from shift
	ExpectedExit     string  `json:"expected_exit"`     // HH:MM, defaults from shift
	DayOff           string  `json:"day_off"`
	ContractStart    *string `json:"contract_start,omitempty"` // YYYY-MM-DD
	ContractDuration *string `json:"contract_duration,omitempty"`
	Salary           *string `json:"salary,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.DocumentNumber = strings.TrimSpace(r.DocumentNumber)

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}
	if !validator.IsValidDocumentNumber(r.DocumentNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "document_number",
			Message: "document_number must be 5-20 letters, digits or dashes",
		})
	}

	if r.TerminalID != nil && *r.TerminalID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "terminal_id",
			Message: "terminal_id must be a positive number",
		})
	}

	if validator.IsEmpty(r.Position) {
		r.Position = DefaultPosition
	}
	r.Position = strings.ToLower(strings.TrimSpace(r.Position))

	// Shift fills in whichever expected time was left blank
	if !validator.IsEmpty(r.Shift) {
		shift, err := schedule.ParseShift(r.Shift)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "shift", Message: err.Error()})
		} else {
			r.Shift = string(shift)
			hours, _ := shift.Hours()
			if validator.IsEmpty(r.ExpectedEntrance) {
				r.ExpectedEntrance = hours.Entrance
			}
			if validator.IsEmpty(r.ExpectedExit) {
				r.ExpectedExit = hours.Exit
			}
		}
	}

	errs = append(errs, validateSchedule(r.ExpectedEntrance, r.ExpectedExit)...)

	if validator.IsEmpty(r.DayOff) {
		errs = append(errs, validator.ValidationError{
			Field:   "day_off",
			Message: "day_off is required",
		})
	} else if day, err := schedule.ParseWeekday(r.DayOff); err != nil {
		errs = append(errs, validator.ValidationError{Field: "day_off", Message: err.Error()})
	} else {
		r.DayOff = string(day)
	}

	errs = append(errs, validateContract(r.ContractStart, r.ContractDuration)...)
	errs = append(errs, validateSalary(r.Salary)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// UPDATE
// ========================================

// UpdateEmployeeRequest is a partial update; nil fields are left untouched.
type UpdateEmployeeRequest struct {
	ID               string  `json:"-"`
	TerminalID       *int    `json:"terminal_id,omitempty"`
	FirstName        *string `json:"first_name,omitempty"`
	LastName         *string `json:"last_name,omitempty"`
	DocumentNumber   *string `json:"document_number,omitempty"`
	Position         *string `json:"position,omitempty"`
	Shift            *string `json:"shift,omitempty"`
	ExpectedEntrance *string `json:"expected_entrance,omitempty"`
	ExpectedExit     *string `json:"expected_exit,omitempty"`
	DayOff           *string `json:"day_off,omitempty"`
	ContractStart    *string `json:"contract_start,omitempty"`
	ContractDuration *string `json:"contract_duration,omitempty"`
	Salary           *string `json:"salary,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.TerminalID != nil && *r.TerminalID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "terminal_id",
			Message: "terminal_id must be a positive number",
		})
	}
	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name cannot be empty",
		})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name cannot be empty",
		})
	}
	if r.DocumentNumber != nil && !validator.IsValidDocumentNumber(strings.TrimSpace(*r.DocumentNumber)) {
		errs = append(errs, validator.ValidationError{
			Field:   "document_number",
			Message: "document_number must be 5-20 letters, digits or dashes",
		})
	}
	if r.Shift != nil {
		if _, err := schedule.ParseShift(*r.Shift); err != nil {
			errs = append(errs, validator.ValidationError{Field: "shift", Message: err.Error()})
		}
	}
	if r.ExpectedEntrance != nil && !validator.IsValidClock(*r.ExpectedEntrance) {
		errs = append(errs, validator.ValidationError{
			Field:   "expected_entrance",
			Message: "expected_entrance must be in HH:MM format",
		})
	}
	if r.ExpectedExit != nil && !validator.IsValidClock(*r.ExpectedExit) {
		errs = append(errs, validator.ValidationError{
			Field:   "expected_exit",
			Message: "expected_exit must be in HH:MM format",
		})
	}
	if r.DayOff != nil {
		if _, err := schedule.ParseWeekday(*r.DayOff); err != nil {
			errs = append(errs, validator.ValidationError{Field: "day_off", Message: err.Error()})
		}
	}

	errs = append(errs, validateContract(r.ContractStart, r.ContractDuration)...)
	errs = append(errs, validateSalary(r.Salary)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// LIST
// ========================================

type EmployeeFilter struct {
	Active   *bool  `json:"active,omitempty"`
	Search   string `json:"search,omitempty"` // name or document number
	Position string `json:"position,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 200",
		})
	}

	f.Search = strings.TrimSpace(f.Search)
	f.Position = strings.ToLower(strings.TrimSpace(f.Position))

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type EmployeeResponse struct {
	ID               string  `json:"id"`
	TerminalID       *int    `json:"terminal_id"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	FullName         string  `json:"full_name"`
	DocumentNumber   string  `json:"document_number"`
	Position         string  `json:"position"`
	Shift            string  `json:"shift,omitempty"`
	ExpectedEntrance string  `json:"expected_entrance"`
	ExpectedExit     string  `json:"expected_exit"`
	DayOff           string  `json:"day_off"`
	DayOffLabel      string  `json:"day_off_label"`
	ContractStart    *string `json:"contract_start"`
	ContractDuration *string `json:"contract_duration"`
	ContractEnd      *string `json:"contract_end"`
	Salary           *string `json:"salary"`
	Active           bool    `json:"active"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

type StatsResponse struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// ToResponse renders an employee for the API.
func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID,
		TerminalID:       e.TerminalID,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		FullName:         e.FullName(),
		DocumentNumber:   e.DocumentNumber,
		Position:         e.Position,
		Shift:            string(e.Shift),
		ExpectedEntrance: e.ExpectedEntrance,
		ExpectedExit:     e.ExpectedExit,
		DayOff:           string(e.DayOff),
		DayOffLabel:      e.DayOff.Label(),
		Active:           e.Active,
		CreatedAt:        e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:        e.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if e.ContractStart != nil {
		s := e.ContractStart.Format("2006-01-02")
		resp.ContractStart = &s
	}
	if e.ContractDuration != nil {
		s := string(*e.ContractDuration)
		resp.ContractDuration = &s
	}
	if e.ContractEnd != nil {
		s := e.ContractEnd.Format("2006-01-02")
		resp.ContractEnd = &s
	}
	if e.Salary != nil {
		s := e.Salary.StringFixed(2)
		resp.Salary = &s
	}
	return resp
}

func validateSchedule(entrance, exit string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.IsValidClock(entrance) {
		errs = append(errs, validator.ValidationError{
			Field:   "expected_entrance",
			Message: "expected_entrance must be in HH:MM format (or pick a shift)",
		})
	}
	if !validator.IsValidClock(exit) {
		errs = append(errs, validator.ValidationError{
			Field:   "expected_exit",
			Message: "expected_exit must be in HH:MM format (or pick a shift)",
		})
	}
	return errs
}

func validateContract(start, duration *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if start != nil && *start != "" {
		if _, valid := validator.IsValidDate(*start); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "contract_start",
				Message: "contract_start must be in YYYY-MM-DD format",
			})
		}
	}
	if duration != nil && *duration != "" {
		if _, err := schedule.ParseContractDuration(*duration); err != nil {
			errs = append(errs, validator.ValidationError{Field: "contract_duration", Message: err.Error()})
		}
	}
	return errs
}

func validateSalary(salary *string) validator.ValidationErrors {
	if salary == nil || *salary == "" {
		return nil
	}
	d, err := decimal.NewFromString(*salary)
	if err != nil || d.IsNegative() {
		return validator.ValidationErrors{{
			Field:   "salary",
			Message: "salary must be a non-negative amount",
		}}
	}
	return nil
}
