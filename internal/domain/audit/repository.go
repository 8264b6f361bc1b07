package audit

import "context"

type AuditRepository interface {
	Create(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit, offset int) ([]Entry, int64, error)
}
