package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/database"
)

// ledgerLockKey identifies the ledger-wide advisory lock shared by every process.
const ledgerLockKey int64 = 0x61747464 // "attd"

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.EventRepository {
	return &attendanceRepository{db: db}
}

const eventColumns = `id, employee_id, punched_at, type, source, synced_at, created_at`

func scanEvents(rows pgx.Rows) ([]attendance.Event, error) {
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.PunchedAt, &ev.Type, &ev.Source, &ev.SyncedAt, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance events: %w", err)
	}
	return events, nil
}

// Insert implements attendance.EventRepository.
func (a *attendanceRepository) Insert(ctx context.Context, event attendance.Event) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_events (id, employee_id, punched_at, type, source, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, punched_at) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, event.ID, event.EmployeeID, event.PunchedAt, event.Type, event.Source, event.SyncedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert attendance event: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteAll implements attendance.EventRepository.
func (a *attendanceRepository) DeleteAll(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_events`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear attendance ledger: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteByEmployeeInRange implements attendance.EventRepository.
func (a *attendanceRepository) DeleteByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		DELETE FROM attendance_events
		WHERE employee_id = $1 AND punched_at >= $2 AND punched_at < $3
	`

	tag, err := q.Exec(ctx, query, employeeID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance events for employee %s: %w", employeeID, err)
	}
	return tag.RowsAffected(), nil
}

// ListByEmployeeInRange implements attendance.EventRepository.
func (a *attendanceRepository) ListByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE employee_id = $1 AND punched_at >= $2 AND punched_at < $3
		ORDER BY punched_at
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	return scanEvents(rows)
}

// ListByEmployeesInRange implements attendance.EventRepository.
func (a *attendanceRepository) ListByEmployeesInRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]attendance.Event, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE employee_id = ANY($1::uuid[]) AND punched_at >= $2 AND punched_at < $3
		ORDER BY employee_id, punched_at
	`

	rows, err := q.Query(ctx, query, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to batch list attendance events: %w", err)
	}
	return scanEvents(rows)
}

// List implements attendance.EventRepository.
func (a *attendanceRepository) List(ctx context.Context, employeeID string, filter attendance.EventFilter) ([]attendance.Event, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"employee_id = $1"}
	args := []interface{}{employeeID}
	argIdx := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		start, err := time.Parse("2006-01-02", *filter.StartDate)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid start_date: %w", err)
		}
		conditions = append(conditions, fmt.Sprintf("punched_at >= $%d", argIdx))
		args = append(args, start)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		end, err := time.Parse("2006-01-02", *filter.EndDate)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid end_date: %w", err)
		}
		// end_date is inclusive
		conditions = append(conditions, fmt.Sprintf("punched_at < $%d", argIdx))
		args = append(args, end.AddDate(0, 0, 1))
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attendance_events WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance events: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s FROM attendance_events WHERE %s ORDER BY punched_at DESC LIMIT $%d OFFSET $%d`,
		eventColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance events: %w", err)
	}
	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// LockLedger implements attendance.EventRepository. The lock is released when
// the surrounding transaction ends.
func (a *attendanceRepository) LockLedger(ctx context.Context, exclusive bool) error {
	q := GetQuerier(ctx, a.db)

	query := `SELECT pg_advisory_xact_lock_shared($1)`
	if exclusive {
		query = `SELECT pg_advisory_xact_lock($1)`
	}

	if _, err := q.Exec(ctx, query, ledgerLockKey); err != nil {
		return fmt.Errorf("failed to lock attendance ledger: %w", err)
	}
	return nil
}
