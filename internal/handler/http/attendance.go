package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sensacion-hr/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Sync(w http.ResponseWriter, r *http.Request)
	Resync(w http.ResponseWriter, r *http.Request)
	ManualOverride(w http.ResponseWriter, r *http.Request)
	ListEvents(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// Sync handles POST /attendance/sync
func (h *attendanceHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Sync(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// Resync handles POST /attendance/resync
func (h *attendanceHandlerImpl) Resync(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Resync(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// ManualOverride handles POST /attendance/manual
func (h *attendanceHandlerImpl) ManualOverride(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualOverrideRequest
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Debug("ManualOverride decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ManualOverride(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", result)
}

// ListEvents handles GET /employees/{id}/attendance
func (h *attendanceHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter := attendance.EventFilter{
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
	}

	result, err := h.attendanceService.ListEvents(r.Context(), chi.URLParam(r, "id"), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
