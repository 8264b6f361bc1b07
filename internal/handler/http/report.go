package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/report"
	"github.com/sensacion-hr/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	MonthlyReport(w http.ResponseWriter, r *http.Request)
	ExportMonthlyReport(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func monthlyReportRequest(r *http.Request) report.MonthlyReportRequest {
	return report.MonthlyReportRequest{
		EmployeeID: chi.URLParam(r, "id"),
		Month:      queryInt(r, "month"),
		Year:       queryInt(r, "year"),
	}
}

// MonthlyReport handles GET /employees/{id}/report?month&year
func (h *reportHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.MonthlyReport(r.Context(), monthlyReportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthlyReport handles GET /employees/{id}/report/export?month&year
func (h *reportHandlerImpl) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.ExportMonthly(r.Context(), monthlyReportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.FileName, file.ContentType, file.Content)
}

// Dashboard handles GET /dashboard?month&year
func (h *reportHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	req := report.DashboardRequest{
		Month: queryInt(r, "month"),
		Year:  queryInt(r, "year"),
	}

	result, err := h.reportService.Dashboard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
