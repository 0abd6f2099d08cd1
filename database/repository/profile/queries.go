package profileRepo

import (
	"context"
	"fmt"
	"time"

	"tutorhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 5 * time.Second

func (r *mongoProfileRepo) GetByID(ctx context.Context, id string) (*models.ProfileDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc models.ProfileDocument
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", id, err)
	}
	return &doc, nil
}

func (r *mongoProfileRepo) GetByIDs(ctx context.Context, ids []string) ([]models.ProfileDocument, error) {
	if len(ids) == 0 {
		return []models.ProfileDocument{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.ProfileDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding profiles: %w", err)
	}
	return orderByIDs(docs, ids), nil
}

func (r *mongoProfileRepo) ListTutors(ctx context.Context) ([]models.ProfileDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"role":   "tutor",
		"status": bson.M{"$nin": bson.A{"inactive", "suspended"}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tutors: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []models.ProfileDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding tutors: %w", err)
	}
	return docs, nil
}

// orderByIDs restores the caller's order; $in does not preserve it.
func orderByIDs(docs []models.ProfileDocument, ids []string) []models.ProfileDocument {
	byID := make(map[string]models.ProfileDocument, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	out := make([]models.ProfileDocument, 0, len(docs))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, d)
		}
	}
	return out
}
