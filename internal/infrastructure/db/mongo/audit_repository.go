package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// MongoAuditRepository persists audit events. Events are append-only.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
