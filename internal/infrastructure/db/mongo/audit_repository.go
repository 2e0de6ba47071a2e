package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shmakov/account-service/internal/core/domain"
)

const auditCollection = "account_audit"

// AuditRepository implements ports.AuditLog on an append-only collection.
type AuditRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection), now: time.Now}
}

// Record inserts one audit document. recorded_at is the write time and may
// lag occurred_at.
func (r *AuditRepository) Record(ctx context.Context, entry domain.AuditEntry) error {
	doc := bson.M{
		"action":      entry.Action,
		"account_id":  entry.AccountID,
		"username":    entry.Username,
		"occurred_at": entry.OccurredAt.UTC(),
		"recorded_at": r.now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
