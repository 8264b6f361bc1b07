package attendance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/audit"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/device"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/employee"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKES =====

type fakeTransactor struct {
	calls atomic.Int32
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls.Add(1)
	return fn(ctx)
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[string]attendance.Event // employee_id|punched_at
	locks  []bool
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]attendance.Event)}
}

func eventKey(employeeID string, at time.Time) string {
	return employeeID + "|" + at.Format(time.RFC3339Nano)
}

func (f *fakeEventRepo) Insert(ctx context.Context, event attendance.Event) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := eventKey(event.EmployeeID, event.PunchedAt)
	if _, ok := f.events[key]; ok {
		return false, nil
	}
	f.events[key] = event
	return true, nil
}

func (f *fakeEventRepo) DeleteAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int64(len(f.events))
	f.events = make(map[string]attendance.Event)
	return n, nil
}

func (f *fakeEventRepo) DeleteByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for key, ev := range f.events {
		if ev.EmployeeID == employeeID && !ev.PunchedAt.Before(from) && ev.PunchedAt.Before(to) {
			delete(f.events, key)
			n++
		}
	}
	return n, nil
}

func (f *fakeEventRepo) ListByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	return f.ListByEmployeesInRange(ctx, []string{employeeID}, from, to)
}

func (f *fakeEventRepo) ListByEmployeesInRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[string]bool)
	for _, id := range employeeIDs {
		wanted[id] = true
	}
	var out []attendance.Event
	for _, ev := range f.events {
		if wanted[ev.EmployeeID] && !ev.PunchedAt.Before(from) && ev.PunchedAt.Before(to) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PunchedAt.Before(out[j].PunchedAt) })
	return out, nil
}

func (f *fakeEventRepo) List(ctx context.Context, employeeID string, filter attendance.EventFilter) ([]attendance.Event, int64, error) {
	all, _ := f.ListByEmployeesInRange(ctx, []string{employeeID}, time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC))
	sort.Slice(all, func(i, j int) bool { return all[i].PunchedAt.After(all[j].PunchedAt) })
	start := (filter.Page - 1) * filter.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (f *fakeEventRepo) LockLedger(ctx context.Context, exclusive bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locks = append(f.locks, exclusive)
	return nil
}

func (f *fakeEventRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range emps {
		f.employees[e.ID] = e
	}
	return f
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) TerminalIndex(ctx context.Context) (map[int]string, error) {
	index := make(map[int]string)
	for _, e := range f.employees {
		if e.TerminalID != nil {
			index[*e.TerminalID] = e.ID
		}
	}
	return index, nil
}

type fakeTerminal struct {
	device.Terminal
	punches []device.Punch
	err     error
}

func (f *fakeTerminal) Punches(ctx context.Context) ([]device.Punch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.punches, nil
}

type noopAudit struct {
	actions []audit.Action
}

func (n *noopAudit) Record(ctx context.Context, action audit.Action, entity, entityID, detail string) {
	n.actions = append(n.actions, action)
}

func (n *noopAudit) List(ctx context.Context, req audit.ListRequest) (audit.ListResponse, error) {
	return audit.ListResponse{}, nil
}

// ===== HELPERS =====

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

var fixedNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

type serviceFixture struct {
	svc      attendance.AttendanceService
	tx       *fakeTransactor
	events   *fakeEventRepo
	terminal *fakeTerminal
	audit    *noopAudit
}

func newFixture(punches []device.Punch, emps ...employee.Employee) serviceFixture {
	f := serviceFixture{
		tx:       &fakeTransactor{},
		events:   newFakeEventRepo(),
		terminal: &fakeTerminal{punches: punches},
		audit:    &noopAudit{},
	}
	f.svc = NewAttendanceService(
		f.tx,
		f.events,
		newFakeEmployeeRepo(emps...),
		f.terminal,
		NewClassifier(DefaultClassifierPolicy()),
		f.audit,
		func() time.Time { return fixedNow },
	)
	return f
}

func testEmployee(id string, terminalID int) employee.Employee {
	return employee.Employee{
		ID:               id,
		TerminalID:       intPtr(terminalID),
		FirstName:        "Ana",
		LastName:         "Quispe",
		ExpectedEntrance: "08:00",
		ExpectedExit:     "17:00",
		DayOff:           "sunday",
		Active:           true,
	}
}

// ===== SYNC / MERGE =====

func TestSync_MergesClassifiedPunches(t *testing.T) {
	f := newFixture([]device.Punch{
		punchAt(7, "2024-05-06 08:10:00"),
		punchAt(7, "2024-05-06 08:10:20"),
		punchAt(7, "2024-05-06 17:05:00"),
		punchAt(99, "2024-05-06 09:00:00"),
		{TerminalID: 7, RawTimestamp: "??"},
	}, testEmployee("emp-1", 7))

	resp, err := f.svc.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, resp.TotalPunches)
	assert.Equal(t, attendance.MergeResult{
		Inserted:                 2,
		SkippedDuplicate:         0,
		SkippedUnmatchedEmployee: 1,
		SkippedInvalidTimestamp:  1,
		DuplicateScans:           1,
	}, resp.Result)
	assert.Equal(t, 2, f.events.count())
	assert.Equal(t, []bool{false}, f.events.locks)
	assert.Contains(t, f.audit.actions, audit.ActionAttendanceSync)
}

func TestSync_IsIdempotent(t *testing.T) {
	f := newFixture([]device.Punch{
		punchAt(7, "2024-05-06 08:00:00"),
		punchAt(7, "2024-05-06 17:00:00"),
	}, testEmployee("emp-1", 7))

	_, err := f.svc.Sync(context.Background())
	require.NoError(t, err)

	resp, err := f.svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Result.Inserted)
	assert.Equal(t, 2, resp.Result.SkippedDuplicate)
	assert.Equal(t, 2, f.events.count())
}

func TestSync_TerminalUnreachable(t *testing.T) {
	f := newFixture(nil, testEmployee("emp-1", 7))
	f.terminal.err = fmt.Errorf("dial tcp: %w", device.ErrTerminalUnreachable)

	_, err := f.svc.Sync(context.Background())

	assert.ErrorIs(t, err, device.ErrTerminalUnreachable)
	assert.Equal(t, int32(0), f.tx.calls.Load())
}

func TestMerge_InactiveEmployeeStillMatches(t *testing.T) {
	emp := testEmployee("emp-1", 7)
	emp.Active = false
	f := newFixture(nil, emp)

	ts := time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)
	result, err := f.svc.Merge(context.Background(), []attendance.ClassifiedPunch{
		{Punch: device.Punch{TerminalID: 7, Timestamp: &ts}, Classification: attendance.ClassEntrance},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
}

func TestMerge_ConcurrentCallsNeverDoubleInsert(t *testing.T) {
	f := newFixture(nil, testEmployee("emp-1", 7))
	ts := time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)
	batch := []attendance.ClassifiedPunch{
		{Punch: device.Punch{TerminalID: 7, Timestamp: &ts}, Classification: attendance.ClassEntrance},
	}

	var wg sync.WaitGroup
	results := make([]attendance.MergeResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = f.svc.Merge(context.Background(), batch)
		}(i)
	}
	wg.Wait()

	inserted := 0
	for _, r := range results {
		inserted += r.Inserted
	}
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 1, f.events.count())
}

// ===== RESYNC =====

func TestResync_RebuildsLedger(t *testing.T) {
	f := newFixture([]device.Punch{
		punchAt(7, "2024-05-06 08:00:00"),
		punchAt(7, "2024-05-06 17:00:00"),
	}, testEmployee("emp-1", 7))

	// A stale manual row that the rebuild must drop
	_, err := f.events.Insert(context.Background(), attendance.Event{
		ID: "stale", EmployeeID: "emp-1", PunchedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Type: attendance.EventEntrance, Source: attendance.SourceManual,
	})
	require.NoError(t, err)

	resp, err := f.svc.Resync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Deleted)
	assert.Equal(t, 2, resp.Result.Inserted)
	assert.Equal(t, 2, f.events.count())
	assert.Equal(t, []bool{true}, f.events.locks)
}

func TestResync_TerminalFailureLeavesLedgerIntact(t *testing.T) {
	f := newFixture(nil, testEmployee("emp-1", 7))
	_, err := f.events.Insert(context.Background(), attendance.Event{
		ID: "kept", EmployeeID: "emp-1", PunchedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Type: attendance.EventEntrance, Source: attendance.SourceDevice,
	})
	require.NoError(t, err)
	f.terminal.err = device.ErrTerminalUnreachable

	_, err = f.svc.Resync(context.Background())

	assert.ErrorIs(t, err, device.ErrTerminalUnreachable)
	assert.Equal(t, 1, f.events.count())
}

func TestResync_RejectsConcurrentRun(t *testing.T) {
	f := newFixture(nil, testEmployee("emp-1", 7))
	impl := f.svc.(*AttendanceServiceImpl)

	impl.resyncMu.Lock()
	_, err := f.svc.Resync(context.Background())
	impl.resyncMu.Unlock()

	assert.ErrorIs(t, err, attendance.ErrResyncInProgress)
}

// ===== MANUAL OVERRIDE =====

func TestManualOverride_ReplacesDay(t *testing.T) {
	f := newFixture([]device.Punch{
		punchAt(7, "2024-05-06 08:10:00"),
		punchAt(7, "2024-05-07 08:00:00"),
	}, testEmployee("emp-1", 7))
	_, err := f.svc.Sync(context.Background())
	require.NoError(t, err)

	resp, err := f.svc.ManualOverride(context.Background(), attendance.ManualOverrideRequest{
		EmployeeID: "emp-1",
		Date:       "2024-05-06",
		Entrance:   strPtr("07:55"),
		Exit:       strPtr("17:30"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Removed)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "2024-05-06 07:55:00", resp.Events[0].PunchedAt)
	assert.Equal(t, string(attendance.SourceManual), resp.Events[0].Source)

	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	stored, _ := f.events.ListByEmployeeInRange(context.Background(), "emp-1", day, day.AddDate(0, 0, 2))
	require.Len(t, stored, 3)
	assert.Equal(t, attendance.SourceManual, stored[0].Source)
	assert.Equal(t, attendance.EventExit, stored[1].Type)
	assert.Equal(t, attendance.SourceDevice, stored[2].Source)
}

func TestManualOverride_ClearsDayWhenNoTimes(t *testing.T) {
	f := newFixture([]device.Punch{punchAt(7, "2024-05-06 08:10:00")}, testEmployee("emp-1", 7))
	_, err := f.svc.Sync(context.Background())
	require.NoError(t, err)

	resp, err := f.svc.ManualOverride(context.Background(), attendance.ManualOverrideRequest{
		EmployeeID: "emp-1",
		Date:       "2024-05-06",
		Entrance:   strPtr(""),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Removed)
	assert.Empty(t, resp.Events)
	assert.Equal(t, 0, f.events.count())
}

func TestManualOverride_Validation(t *testing.T) {
	f := newFixture(nil, testEmployee("emp-1", 7))

	_, err := f.svc.ManualOverride(context.Background(), attendance.ManualOverrideRequest{
		EmployeeID: "emp-1",
		Date:       "06/05/2024",
		Entrance:   strPtr("18:00"),
		Exit:       strPtr("08:00"),
	})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "date")
}

func TestManualOverride_UnknownEmployee(t *testing.T) {
	f := newFixture(nil)

	_, err := f.svc.ManualOverride(context.Background(), attendance.ManualOverrideRequest{
		EmployeeID: "missing",
		Date:       "2024-05-06",
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

// ===== LISTING =====

func TestListEvents_Paginates(t *testing.T) {
	f := newFixture([]device.Punch{
		punchAt(7, "2024-05-06 08:00:00"),
		punchAt(7, "2024-05-06 17:00:00"),
		punchAt(7, "2024-05-07 08:00:00"),
	}, testEmployee("emp-1", 7))
	_, err := f.svc.Sync(context.Background())
	require.NoError(t, err)

	resp, err := f.svc.ListEvents(context.Background(), "emp-1", attendance.EventFilter{Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, "Ana Quispe", resp.EmployeeName)
	assert.Equal(t, int64(3), resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "2024-05-07 08:00:00", resp.Events[0].PunchedAt)
}

func TestListEvents_RejectsInvertedRange(t *testing.T) {
	f := newFixture(nil, testEmployee("emp-1", 7))

	_, err := f.svc.ListEvents(context.Background(), "emp-1", attendance.EventFilter{
		StartDate: strPtr("2024-05-10"),
		EndDate:   strPtr("2024-05-01"),
	})

	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}
