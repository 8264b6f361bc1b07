package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee registers a new employee
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// GetByDocumentNumber retrieves an employee by document number
	GetByDocumentNumber(ctx context.Context, documentNumber string) (EmployeeResponse, error)

	// ListEmployees lists employees with filters
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// UpdateEmployee applies a partial update to an active employee
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeactivateEmployee soft-deletes an employee
	DeactivateEmployee(ctx context.Context, id string) error

	// Stats returns total/active/inactive counts
	Stats(ctx context.Context) (StatsResponse, error)
}
