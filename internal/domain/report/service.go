package report

import "context"

// ReportService derives monthly statistics from the attendance ledger
type ReportService interface {
	// MonthlyReport aggregates one employee's month
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)

	// Dashboard aggregates every active employee's month with rankings
	Dashboard(ctx context.Context, req DashboardRequest) (Dashboard, error)

	// ExportMonthly renders the monthly report as a spreadsheet
	ExportMonthly(ctx context.Context, req MonthlyReportRequest) (ExportFile, error)
}
