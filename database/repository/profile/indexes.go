package profileRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the scheduling reads rely on.
func (r *mongoProfileRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Tutor listing for aggregated slots.
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("role_status_name_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}
	return nil
}
