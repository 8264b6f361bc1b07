package report

import "github.com/sensacion-hr/attendance-backend-go/internal/pkg/validator"

type MonthlyReportRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = append(errs, validator.ValidatePeriod(r.Month, r.Year)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DashboardRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *DashboardRequest) Validate() error {
	if errs := validator.ValidatePeriod(r.Month, r.Year); len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportFile is a rendered report ready to be served as a download.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
