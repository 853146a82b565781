package database

import (
	"context"
	"fmt"
	"streak-pickem-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLeaderboardRepository stores the shared leaderboard, one document
// per hashed user ID.
type MongoLeaderboardRepository struct {
	collection *mongo.Collection
}

// NewMongoLeaderboardRepository creates a new MongoDB leaderboard repository
func NewMongoLeaderboardRepository(db *MongoDB) *MongoLeaderboardRepository {
	return &MongoLeaderboardRepository{
		collection: db.database.Collection("leaderboard"),
	}
}

// LoadAll returns every leaderboard entry, unsorted.
func (r *MongoLeaderboardRepository) LoadAll(ctx context.Context) ([]models.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, MediumTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.LeaderboardEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard entries: %w", err)
	}
	return entries, nil
}

// Upsert replaces the entry with the same ID, inserting when absent.
func (r *MongoLeaderboardRepository) Upsert(ctx context.Context, entry models.LeaderboardEntry) error {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert leaderboard entry %s: %w", entry.ID, err)
	}
	return nil
}

// DeleteIDs removes the entries with the given IDs.
func (r *MongoLeaderboardRepository) DeleteIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, MediumTimeout)
	defer cancel()

	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("failed to delete %d leaderboard entries: %w", len(ids), err)
	}
	return nil
}
