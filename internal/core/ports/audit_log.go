package ports

import (
	"context"

	"github.com/shmakov/account-service/internal/core/domain"
)

// AuditLog appends entries to the account audit trail.
type AuditLog interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}
