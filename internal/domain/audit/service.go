package audit

import "context"

type AuditService interface {
	// Record appends an entry. Failures are logged, never returned.
	Record(ctx context.Context, action Action, entity, entityID, detail string)

	List(ctx context.Context, req ListRequest) (ListResponse, error)
}
