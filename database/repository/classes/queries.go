package classesRepo

import (
	"context"
	"fmt"
	"time"

	"tutorhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 5 * time.Second

func (r *mongoClassRepo) ListForPersonOnDate(ctx context.Context, personID, role, date string) ([]models.ClassRecord, error) {
	filter, err := onDateFilter(personID, role, date)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, filter)
}

func (r *mongoClassRepo) ListForPerson(ctx context.Context, personID, role string) ([]models.ClassRecord, error) {
	filter, err := personFilter(personID, role)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, filter)
}

func (r *mongoClassRepo) find(ctx context.Context, filter bson.M) ([]models.ClassRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch classes: %w", err)
	}
	defer cursor.Close(ctx)

	// Never nil: an empty result is a loaded, empty calendar.
	records := []models.ClassRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("error decoding classes: %w", err)
	}
	return records, nil
}
