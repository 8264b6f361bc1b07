package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByDocumentNumber(ctx context.Context, documentNumber string) (Employee, error)
	GetByTerminalID(ctx context.Context, terminalID int) (Employee, error)

	// TerminalIndex maps every assigned terminal id to its employee id
	TerminalIndex(ctx context.Context) (map[int]string, error)

	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, emp Employee) error
	Deactivate(ctx context.Context, id string) error
	Stats(ctx context.Context) (Stats, error)
}
