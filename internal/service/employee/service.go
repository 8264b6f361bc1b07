package employee

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/audit"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/employee"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	auditService audit.AuditService
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	auditService audit.AuditService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
		auditService:       auditService,
	}
}

// NewID returns a time-ordered UUIDv7, falling back to v4 if the clock source fails.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		ID:               NewID(),
		TerminalID:       req.TerminalID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		DocumentNumber:   req.DocumentNumber,
		Position:         req.Position,
		Shift:            schedule.Shift(req.Shift),
		ExpectedEntrance: req.ExpectedEntrance,
		ExpectedExit:     req.ExpectedExit,
		DayOff:           schedule.Weekday(req.DayOff),
		ContractStart:    parseDate(req.ContractStart),
		ContractDuration: parseDuration(req.ContractDuration),
		Salary:           parseSalary(req.Salary),
		Active:           true,
	}
	newEmployee.RecomputeContractEnd()

	created, err := s.EmployeeRepository.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.ID, "document_number", created.DocumentNumber)
	s.auditService.Record(ctx, audit.ActionEmployeeCreate, "employee", created.ID, created.FullName())

	return employee.ToResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// GetByDocumentNumber implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByDocumentNumber(ctx context.Context, documentNumber string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByDocumentNumber(ctx, strings.TrimSpace(documentNumber))
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  make([]employee.EmployeeResponse, 0, len(employees)),
	}
	for _, emp := range employees {
		resp.Employees = append(resp.Employees, employee.ToResponse(emp))
	}
	return resp, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !emp.Active {
		return employee.EmployeeResponse{}, employee.ErrEmployeeInactive
	}

	if req.TerminalID != nil {
		if emp.TerminalID != nil && *emp.TerminalID != *req.TerminalID {
			return employee.EmployeeResponse{}, employee.ErrTerminalIDImmutable
		}
		emp.TerminalID = req.TerminalID
	}
	if req.FirstName != nil {
		emp.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		emp.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.DocumentNumber != nil {
		emp.DocumentNumber = strings.TrimSpace(*req.DocumentNumber)
	}
	if req.Position != nil {
		emp.Position = strings.ToLower(strings.TrimSpace(*req.Position))
		if emp.Position == "" {
			emp.Position = employee.DefaultPosition
		}
	}

	// A new shift resets the expected times unless they are given explicitly
	if req.Shift != nil {
		shift, _ := schedule.ParseShift(*req.Shift)
		emp.Shift = shift
		hours, _ := shift.Hours()
		emp.ExpectedEntrance = hours.Entrance
		emp.ExpectedExit = hours.Exit
	}
	if req.ExpectedEntrance != nil {
		emp.ExpectedEntrance = strings.TrimSpace(*req.ExpectedEntrance)
	}
	if req.ExpectedExit != nil {
		emp.ExpectedExit = strings.TrimSpace(*req.ExpectedExit)
	}
	if req.DayOff != nil {
		emp.DayOff, _ = schedule.ParseWeekday(*req.DayOff)
	}

	// An empty string clears the optional fields
	if req.ContractStart != nil {
		emp.ContractStart = parseDate(req.ContractStart)
	}
	if req.ContractDuration != nil {
		emp.ContractDuration = parseDuration(req.ContractDuration)
	}
	if req.ContractStart != nil || req.ContractDuration != nil {
		emp.RecomputeContractEnd()
	}
	if req.Salary != nil {
		emp.Salary = parseSalary(req.Salary)
	}

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.EmployeeRepository.GetByID(ctx, emp.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.auditService.Record(ctx, audit.ActionEmployeeUpdate, "employee", updated.ID, updated.FullName())

	return employee.ToResponse(updated), nil
}

// DeactivateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, id string) error {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !emp.Active {
		return employee.ErrEmployeeAlreadyInactive
	}

	if err := s.EmployeeRepository.Deactivate(ctx, emp.ID); err != nil {
		return err
	}

	slog.Info("employee deactivated", "employee_id", emp.ID)
	s.auditService.Record(ctx, audit.ActionEmployeeDeactivate, "employee", emp.ID, emp.FullName())
	return nil
}

// Stats implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Stats(ctx context.Context) (employee.StatsResponse, error) {
	stats, err := s.EmployeeRepository.Stats(ctx)
	if err != nil {
		return employee.StatsResponse{}, fmt.Errorf("failed to count employees: %w", err)
	}
	return employee.StatsResponse{
		Total:    stats.Total,
		Active:   stats.Active,
		Inactive: stats.Inactive,
	}, nil
}

// The parse helpers below run on already validated input.

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

func parseDuration(s *string) *schedule.ContractDuration {
	if s == nil || *s == "" {
		return nil
	}
	d, err := schedule.ParseContractDuration(*s)
	if err != nil {
		return nil
	}
	return &d
}

func parseSalary(s *string) *decimal.Decimal {
	if s == nil || *s == "" {
		return nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}
	return &d
}
