package ports

import (
	"context"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// AuditRecorder accepts audit events for asynchronous persistence.
// Record never blocks the request path beyond queue admission.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
