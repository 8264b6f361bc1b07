package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/audit"
	"github.com/sensacion-hr/attendance-backend-go/internal/handler/http/response"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/csrf"
)

const healthTimeout = 3 * time.Second

// Pinger is satisfied by the database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
	Branch(w http.ResponseWriter, r *http.Request)
	CSRFToken(w http.ResponseWriter, r *http.Request)
	AuditLog(w http.ResponseWriter, r *http.Request)
}

type systemHandlerImpl struct {
	db           Pinger
	csrfStore    csrf.Store
	auditService audit.AuditService
	branchName   string
}

func NewSystemHandler(db Pinger, csrfStore csrf.Store, auditService audit.AuditService, branchName string) SystemHandler {
	return &systemHandlerImpl{
		db:           db,
		csrfStore:    csrfStore,
		auditService: auditService,
		branchName:   branchName,
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health handles GET /health
func (h *systemHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.Error("health check failed", "error", err)
		response.ServiceUnavailable(w, "Database disconnected")
		return
	}

	response.Success(w, healthResponse{Status: "ok", Database: "connected"})
}

type branchResponse struct {
	Name string `json:"name"`
}

// Branch handles GET /branch
func (h *systemHandlerImpl) Branch(w http.ResponseWriter, r *http.Request) {
	response.Success(w, branchResponse{Name: h.branchName})
}

type csrfTokenResponse struct {
	CSRFToken string `json:"csrf_token"`
}

// CSRFToken handles GET /csrf-token
func (h *systemHandlerImpl) CSRFToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.csrfStore.Issue()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	response.Success(w, csrfTokenResponse{CSRFToken: token})
}

// AuditLog handles GET /audit-log?limit&offset
func (h *systemHandlerImpl) AuditLog(w http.ResponseWriter, r *http.Request) {
	req := audit.ListRequest{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}

	result, err := h.auditService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
