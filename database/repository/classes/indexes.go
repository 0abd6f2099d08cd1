package classesRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes used by the per-person calendar queries.
func (r *mongoClassRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "tutor.id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("tutor_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "students.id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("students_status_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create class indexes: %w", err)
	}
	return nil
}
