package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/audit"
)

type AuditServiceImpl struct {
	audit.AuditRepository
}

func NewAuditService(auditRepo audit.AuditRepository) audit.AuditService {
	return &AuditServiceImpl{AuditRepository: auditRepo}
}

// Record implements audit.AuditService.
func (s *AuditServiceImpl) Record(ctx context.Context, action audit.Action, entity, entityID, detail string) {
	actor := audit.ActorFrom(ctx)
	entry := audit.Entry{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
		Username: actor.Username,
		IP:       actor.IP,
	}

	// The entry outlives a client that hung up after the change was committed
	if err := s.AuditRepository.Create(context.WithoutCancel(ctx), entry); err != nil {
		slog.Warn("failed to write audit entry",
			"action", action,
			"entity", entity,
			"entity_id", entityID,
			"error", err,
		)
	}
}

// List implements audit.AuditService.
func (s *AuditServiceImpl) List(ctx context.Context, req audit.ListRequest) (audit.ListResponse, error) {
	req.Normalize()

	entries, total, err := s.AuditRepository.List(ctx, req.Limit, req.Offset)
	if err != nil {
		return audit.ListResponse{}, fmt.Errorf("failed to list audit entries: %w", err)
	}

	resp := audit.ListResponse{
		TotalCount: total,
		Limit:      req.Limit,
		Offset:     req.Offset,
		Entries:    make([]audit.EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, audit.EntryResponse{
			ID:        e.ID,
			Action:    string(e.Action),
			Entity:    e.Entity,
			EntityID:  e.EntityID,
			Detail:    e.Detail,
			Username:  e.Username,
			IP:        e.IP,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}
