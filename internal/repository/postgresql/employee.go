package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/employee"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, terminal_id, first_name, last_name, document_number, position, shift,
	expected_entrance, expected_exit, day_off, contract_start, contract_duration,
	contract_end, salary, active, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.TerminalID, &emp.FirstName, &emp.LastName, &emp.DocumentNumber,
		&emp.Position, &emp.Shift, &emp.ExpectedEntrance, &emp.ExpectedExit, &emp.DayOff,
		&emp.ContractStart, &emp.ContractDuration, &emp.ContractEnd, &emp.Salary,
		&emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// translateEmployeeError maps unique violations to domain conflicts.
func translateEmployeeError(err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return err
	}
	switch constraint {
	case "employees_terminal_id_key":
		return employee.ErrTerminalIDExists
	default:
		return employee.ErrDocumentNumberExists
	}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, terminal_id, first_name, last_name, document_number, position, shift,
			expected_entrance, expected_exit, day_off, contract_start, contract_duration,
			contract_end, salary, active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.TerminalID, newEmployee.FirstName, newEmployee.LastName,
		newEmployee.DocumentNumber, newEmployee.Position, newEmployee.Shift,
		newEmployee.ExpectedEntrance, newEmployee.ExpectedExit, newEmployee.DayOff,
		newEmployee.ContractStart, newEmployee.ContractDuration, newEmployee.ContractEnd,
		newEmployee.Salary, newEmployee.Active,
	))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", translateEmployeeError(err))
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByDocumentNumber implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByDocumentNumber(ctx context.Context, documentNumber string) (employee.Employee, error) {
	return r.getOne(ctx, "document_number = $1", documentNumber)
}

// GetByTerminalID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByTerminalID(ctx context.Context, terminalID int) (employee.Employee, error) {
	return r.getOne(ctx, "terminal_id = $1", terminalID)
}

func (r *employeeRepositoryImpl) getOne(ctx context.Context, where string, arg interface{}) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + ` FROM employees WHERE ` + where

	emp, err := scanEmployee(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// TerminalIndex implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) TerminalIndex(ctx context.Context) (map[int]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT terminal_id, id FROM employees WHERE terminal_id IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to load terminal index: %w", err)
	}
	defer rows.Close()

	index := make(map[int]string)
	for rows.Next() {
		var terminalID int
		var id string
		if err := rows.Scan(&terminalID, &id); err != nil {
			return nil, fmt.Errorf("failed to scan terminal index: %w", err)
		}
		index[terminalID] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate terminal index: %w", err)
	}
	return index, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE conditions
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR document_number ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Position != "" {
		conditions = append(conditions, fmt.Sprintf("position = $%d", argIdx))
		args = append(args, filter.Position)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Count query
	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	// Main query with pagination
	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE %s ORDER BY first_name, last_name, id LIMIT $%d OFFSET $%d`,
		employeeColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	employees, err := r.queryEmployees(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + employeeColumns + ` FROM employees WHERE active = TRUE ORDER BY first_name, last_name, id`
	return r.queryEmployees(ctx, q, query)
}

func (r *employeeRepositoryImpl) queryEmployees(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]employee.Employee, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			terminal_id = $2, first_name = $3, last_name = $4, document_number = $5,
			position = $6, shift = $7, expected_entrance = $8, expected_exit = $9,
			day_off = $10, contract_start = $11, contract_duration = $12,
			contract_end = $13, salary = $14, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		emp.ID, emp.TerminalID, emp.FirstName, emp.LastName, emp.DocumentNumber,
		emp.Position, emp.Shift, emp.ExpectedEntrance, emp.ExpectedExit,
		emp.DayOff, emp.ContractStart, emp.ContractDuration, emp.ContractEnd, emp.Salary,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", emp.ID, translateEmployeeError(err))
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Deactivate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Stats implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Stats(ctx context.Context) (employee.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE active),
			COUNT(*) FILTER (WHERE NOT active)
		FROM employees
	`

	var stats employee.Stats
	if err := q.QueryRow(ctx, query).Scan(&stats.Total, &stats.Active, &stats.Inactive); err != nil {
		return employee.Stats{}, fmt.Errorf("failed to count employees: %w", err)
	}
	return stats, nil
}
