package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/audit"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/device"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/employee"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.EventRepository
	employee.EmployeeRepository
	terminal     device.Terminal
	classifier   *Classifier
	auditService audit.AuditService
	now          func() time.Time

	// Serializes resyncs inside this process; the advisory lock covers the rest
	resyncMu sync.Mutex
}

func NewAttendanceService(
	tx database.Transactor,
	eventRepo attendance.EventRepository,
	employeeRepo employee.EmployeeRepository,
	terminal device.Terminal,
	classifier *Classifier,
	auditService audit.AuditService,
	now func() time.Time,
) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		tx:                 tx,
		EventRepository:    eventRepo,
		EmployeeRepository: employeeRepo,
		terminal:           terminal,
		classifier:         classifier,
		auditService:       auditService,
		now:                now,
	}
}

// Sync implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Sync(ctx context.Context) (attendance.SyncResponse, error) {
	punches, err := s.terminal.Punches(ctx)
	if err != nil {
		return attendance.SyncResponse{}, fmt.Errorf("failed to read punches: %w", err)
	}

	result, err := s.Merge(ctx, s.classifier.Classify(punches))
	if err != nil {
		return attendance.SyncResponse{}, err
	}

	slog.Info("attendance sync finished",
		"total_punches", len(punches),
		"inserted", result.Inserted,
		"skipped_duplicate", result.SkippedDuplicate,
		"skipped_unmatched_employee", result.SkippedUnmatchedEmployee,
		"skipped_invalid_timestamp", result.SkippedInvalidTimestamp,
		"duplicate_scans", result.DuplicateScans,
	)
	s.auditService.Record(ctx, audit.ActionAttendanceSync, "attendance", "",
		fmt.Sprintf("punches=%d inserted=%d", len(punches), result.Inserted))

	return attendance.SyncResponse{
		TotalPunches: len(punches),
		Result:       result,
		Message:      fmt.Sprintf("%d new attendance events recorded", result.Inserted),
	}, nil
}

// Resync implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Resync(ctx context.Context) (attendance.SyncResponse, error) {
	if !s.resyncMu.TryLock() {
		return attendance.SyncResponse{}, attendance.ErrResyncInProgress
	}
	defer s.resyncMu.Unlock()

	// Read the terminal before touching the ledger so a failed read leaves it intact
	punches, err := s.terminal.Punches(ctx)
	if err != nil {
		return attendance.SyncResponse{}, fmt.Errorf("failed to read punches: %w", err)
	}
	classified := s.classifier.Classify(punches)

	var deleted int64
	var result attendance.MergeResult
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.EventRepository.LockLedger(ctx, true); err != nil {
			return err
		}

		deleted, err = s.EventRepository.DeleteAll(ctx)
		if err != nil {
			return err
		}

		result, err = s.merge(ctx, classified)
		return err
	})
	if err != nil {
		return attendance.SyncResponse{}, fmt.Errorf("failed to resync attendance ledger: %w", err)
	}

	slog.Warn("attendance ledger rebuilt",
		"deleted", deleted,
		"total_punches", len(punches),
		"inserted", result.Inserted,
		"duplicate_scans", result.DuplicateScans,
	)
	s.auditService.Record(ctx, audit.ActionAttendanceResync, "attendance", "",
		fmt.Sprintf("deleted=%d punches=%d inserted=%d", deleted, len(punches), result.Inserted))

	return attendance.SyncResponse{
		TotalPunches: len(punches),
		Deleted:      deleted,
		Result:       result,
		Message:      fmt.Sprintf("ledger rebuilt: %d events removed, %d recorded", deleted, result.Inserted),
	}, nil
}

// Merge implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Merge(ctx context.Context, punches []attendance.ClassifiedPunch) (attendance.MergeResult, error) {
	var result attendance.MergeResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.EventRepository.LockLedger(ctx, false); err != nil {
			return err
		}

		var err error
		result, err = s.merge(ctx, punches)
		return err
	})
	if err != nil {
		return attendance.MergeResult{}, fmt.Errorf("failed to merge punches: %w", err)
	}
	return result, nil
}

// merge expects the caller to hold the ledger lock.
func (s *AttendanceServiceImpl) merge(ctx context.Context, punches []attendance.ClassifiedPunch) (attendance.MergeResult, error) {
	var result attendance.MergeResult
	if len(punches) == 0 {
		return result, nil
	}

	index, err := s.EmployeeRepository.TerminalIndex(ctx)
	if err != nil {
		return result, err
	}

	syncedAt := s.now()
	for _, p := range punches {
		eventType, ok := p.Classification.EventType()
		if !ok {
			result.DuplicateScans++
			continue
		}
		if p.Timestamp == nil {
			result.SkippedInvalidTimestamp++
			continue
		}
		employeeID, ok := index[p.TerminalID]
		if !ok {
			result.SkippedUnmatchedEmployee++
			continue
		}

		inserted, err := s.EventRepository.Insert(ctx, attendance.Event{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			PunchedAt:  *p.Timestamp,
			Type:       eventType,
			Source:     attendance.SourceDevice,
			SyncedAt:   syncedAt,
		})
		if err != nil {
			return result, err
		}
		if inserted {
			result.Inserted++
		} else {
			result.SkippedDuplicate++
		}
	}

	return result, nil
}

// ManualOverride implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ManualOverride(ctx context.Context, req attendance.ManualOverrideRequest) (attendance.ManualOverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ManualOverrideResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.ManualOverrideResponse{}, err
	}
	if !emp.Active {
		return attendance.ManualOverrideResponse{}, employee.ErrEmployeeInactive
	}

	day, err := req.Day()
	if err != nil {
		return attendance.ManualOverrideResponse{}, err
	}
	nextDay := day.AddDate(0, 0, 1)

	var events []attendance.Event
	for _, side := range []struct {
		clock *string
		typ   attendance.EventType
	}{
		{req.Entrance, attendance.EventEntrance},
		{req.Exit, attendance.EventExit},
	} {
		if side.clock == nil {
			continue
		}
		minutes, err := schedule.ParseClock(*side.clock)
		if err != nil {
			return attendance.ManualOverrideResponse{}, err
		}
		events = append(events, attendance.Event{
			ID:         uuid.NewString(),
			EmployeeID: emp.ID,
			PunchedAt:  day.Add(time.Duration(minutes) * time.Minute),
			Type:       side.typ,
			Source:     attendance.SourceManual,
			SyncedAt:   s.now(),
		})
	}

	var removed int64
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.EventRepository.LockLedger(ctx, false); err != nil {
			return err
		}

		removed, err = s.EventRepository.DeleteByEmployeeInRange(ctx, emp.ID, day, nextDay)
		if err != nil {
			return err
		}

		for _, ev := range events {
			if _, err := s.EventRepository.Insert(ctx, ev); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return attendance.ManualOverrideResponse{}, fmt.Errorf("failed to override attendance: %w", err)
	}

	s.auditService.Record(ctx, audit.ActionAttendanceManual, "employee", emp.ID,
		fmt.Sprintf("date=%s removed=%d added=%d", req.Date, removed, len(events)))

	resp := attendance.ManualOverrideResponse{
		EmployeeID: emp.ID,
		Date:       req.Date,
		Removed:    removed,
		Events:     make([]attendance.EventResponse, 0, len(events)),
	}
	for _, ev := range events {
		resp.Events = append(resp.Events, mapEventToResponse(ev))
	}
	return resp, nil
}

// ListEvents implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListEvents(ctx context.Context, employeeID string, filter attendance.EventFilter) (attendance.ListEventsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListEventsResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.ListEventsResponse{}, err
	}

	events, total, err := s.EventRepository.List(ctx, emp.ID, filter)
	if err != nil {
		return attendance.ListEventsResponse{}, fmt.Errorf("failed to list attendance events: %w", err)
	}

	resp := attendance.ListEventsResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName(),
		TotalCount:   total,
		Page:         filter.Page,
		Limit:        filter.Limit,
		TotalPages:   int(math.Ceil(float64(total) / float64(filter.Limit))),
		Events:       make([]attendance.EventResponse, 0, len(events)),
	}
	for _, ev := range events {
		resp.Events = append(resp.Events, mapEventToResponse(ev))
	}
	return resp, nil
}

func mapEventToResponse(ev attendance.Event) attendance.EventResponse {
	return attendance.EventResponse{
		ID:        ev.ID,
		PunchedAt: ev.PunchedAt.Format("2006-01-02 15:04:05"),
		Type:      string(ev.Type),
		Source:    string(ev.Source),
		SyncedAt:  ev.SyncedAt.Format(time.RFC3339),
	}
}
