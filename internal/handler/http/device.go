package http

import (
	"log/slog"
	"net/http"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/device"
	"github.com/sensacion-hr/attendance-backend-go/internal/handler/http/response"
)

type DeviceHandler interface {
	Info(w http.ResponseWriter, r *http.Request)
	Configure(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	ListPunches(w http.ResponseWriter, r *http.Request)
	ImportUsers(w http.ResponseWriter, r *http.Request)
}

type deviceHandlerImpl struct {
	deviceService device.DeviceService
}

func NewDeviceHandler(deviceService device.DeviceService) DeviceHandler {
	return &deviceHandlerImpl{deviceService: deviceService}
}

// Info handles GET /device/info
func (h *deviceHandlerImpl) Info(w http.ResponseWriter, r *http.Request) {
	info, err := h.deviceService.Info(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, info)
}

// Configure handles POST /device/configure
func (h *deviceHandlerImpl) Configure(w http.ResponseWriter, r *http.Request) {
	var req device.ConfigureRequest
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Debug("Configure decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	info, err := h.deviceService.Configure(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Terminal configured", info)
}

// ListUsers handles GET /device/users
func (h *deviceHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	result, err := h.deviceService.ListUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPunches handles GET /device/punches
func (h *deviceHandlerImpl) ListPunches(w http.ResponseWriter, r *http.Request) {
	result, err := h.deviceService.ListPunches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ImportUsers handles POST /device/import-users
func (h *deviceHandlerImpl) ImportUsers(w http.ResponseWriter, r *http.Request) {
	result, err := h.deviceService.ImportUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}
