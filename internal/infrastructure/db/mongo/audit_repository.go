package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

// AuditRepository stores audit entries in the audit_log collection.
// Entries are only ever inserted.
type AuditRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit), seq: newSequence(db)}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	id, err := r.seq.next(ctx, collectionAudit)
	if err != nil {
		return err
	}

	doc := *entry
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, &doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	entry.ID = id
	return nil
}

func (r *AuditRepository) List(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cur.Close(ctx)

	entries := make([]*domain.AuditEntry, 0)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode audit entries: %w", err)
	}
	return entries, nil
}
