package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/employee"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/report"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/export"
)

type ReportServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	eventRepo    attendance.EventRepository
	loc          *time.Location
	now          func() time.Time
}

// NewReportService builds the report service. loc decides which calendar day
// is "today" when counting absences.
func NewReportService(
	employeeRepo employee.EmployeeRepository,
	eventRepo attendance.EventRepository,
	loc *time.Location,
	now func() time.Time,
) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &ReportServiceImpl{
		employeeRepo: employeeRepo,
		eventRepo:    eventRepo,
		loc:          loc,
		now:          now,
	}
}

func (s *ReportServiceImpl) today() time.Time {
	return s.now().In(s.loc)
}

// MonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	from, to := MonthRange(req.Year, req.Month)
	events, err := s.eventRepo.ListByEmployeeInRange(ctx, emp.ID, from, to)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to load attendance events: %w", err)
	}

	rep := Aggregate(emp.Policy(), events, req.Year, req.Month, s.today())
	rep.EmployeeID = emp.ID
	rep.EmployeeName = emp.FullName()
	rep.Position = emp.Position
	return rep, nil
}

// Dashboard implements report.ReportService.
func (s *ReportServiceImpl) Dashboard(ctx context.Context, req report.DashboardRequest) (report.Dashboard, error) {
	if err := req.Validate(); err != nil {
		return report.Dashboard{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return report.Dashboard{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	ids := make([]string, len(employees))
	for i, emp := range employees {
		ids[i] = emp.ID
	}

	from, to := MonthRange(req.Year, req.Month)
	events, err := s.eventRepo.ListByEmployeesInRange(ctx, ids, from, to)
	if err != nil {
		return report.Dashboard{}, fmt.Errorf("failed to load attendance events: %w", err)
	}

	byEmployee := make(map[string][]attendance.Event, len(employees))
	for _, ev := range events {
		byEmployee[ev.EmployeeID] = append(byEmployee[ev.EmployeeID], ev)
	}

	today := s.today()
	dash := report.Dashboard{
		Year:           req.Year,
		Month:          req.Month,
		TotalEmployees: len(employees),
		ByPosition:     make(map[string]int),
		TopLate:        []report.RankEntry{},
		TopAbsent:      []report.RankEntry{},
	}

	ranks := make([]report.RankEntry, 0, len(employees))
	for _, emp := range employees {
		rep := Aggregate(emp.Policy(), byEmployee[emp.ID], req.Year, req.Month, today)

		dash.ByPosition[emp.Position]++
		dash.TotalDaysAbsent += rep.DaysAbsent
		dash.TotalLateMinutes += rep.TotalLateMinutes
		dash.TotalExtraMinutes += rep.TotalExtraMinutes

		ranks = append(ranks, report.RankEntry{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName(),
			Position:     emp.Position,
			LateMinutes:  rep.TotalLateMinutes,
			AbsentDays:   rep.DaysAbsent,
		})
	}

	dash.TopLate = topN(ranks, func(r report.RankEntry) int { return r.LateMinutes })
	dash.TopAbsent = topN(ranks, func(r report.RankEntry) int { return r.AbsentDays })

	slog.Debug("dashboard computed",
		"year", req.Year,
		"month", req.Month,
		"employees", len(employees),
		"events", len(events),
	)

	return dash, nil
}

// topN ranks by score descending; ties are ordered by name, then id.
func topN(entries []report.RankEntry, score func(report.RankEntry) int) []report.RankEntry {
	sorted := make([]report.RankEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if score(a) != score(b) {
			return score(a) > score(b)
		}
		if a.EmployeeName != b.EmployeeName {
			return a.EmployeeName < b.EmployeeName
		}
		return a.EmployeeID < b.EmployeeID
	})
	if len(sorted) > report.TopN {
		sorted = sorted[:report.TopN]
	}
	return sorted
}

// ExportMonthly implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthly(ctx context.Context, req report.MonthlyReportRequest) (report.ExportFile, error) {
	rep, err := s.MonthlyReport(ctx, req)
	if err != nil {
		return report.ExportFile{}, err
	}

	content, err := export.MonthlyReportXLSX(rep)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to render monthly report: %w", err)
	}

	return report.ExportFile{
		FileName:    export.MonthlyReportFileName(rep),
		ContentType: export.XLSXContentType,
		Content:     content,
	}, nil
}
