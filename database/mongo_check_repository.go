package database

import (
	"context"
	"fmt"
	"streak-pickem-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCheckRepository persists pending outcome checks so picks made
// before a restart still get resolved.
type MongoCheckRepository struct {
	collection *mongo.Collection
}

// NewMongoCheckRepository creates a new MongoDB check repository
func NewMongoCheckRepository(db *MongoDB) *MongoCheckRepository {
	return &MongoCheckRepository{
		collection: db.database.Collection("result_checks"),
	}
}

// Save writes the check's current snapshot, inserting when absent.
func (r *MongoCheckRepository) Save(ctx context.Context, check *models.PendingCheck) error {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": check.ID}, check, opts)
	if err != nil {
		return fmt.Errorf("failed to save check %s: %w", check.ID, err)
	}
	return nil
}

// ListPending returns every check that still needs to run.
func (r *MongoCheckRepository) ListPending(ctx context.Context) ([]*models.PendingCheck, error) {
	ctx, cancel := context.WithTimeout(ctx, MediumTimeout)
	defer cancel()

	filter := bson.M{"state": bson.M{"$in": []models.CheckState{models.CheckScheduled, models.CheckChecking}}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending checks: %w", err)
	}
	defer cursor.Close(ctx)

	var checks []*models.PendingCheck
	if err := cursor.All(ctx, &checks); err != nil {
		return nil, fmt.Errorf("failed to decode pending checks: %w", err)
	}
	return checks, nil
}
