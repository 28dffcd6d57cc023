package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nextSequence atomically increments and returns the named counter, yielding
// monotonically increasing integer ids. The upsert makes the first call for a
// name start at 1.
func nextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var doc struct {
		Value int64 `bson:"value"`
	}
	err := db.Collection(sequencesCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next sequence %q: %w", name, err)
	}
	return doc.Value, nil
}
