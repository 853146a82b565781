package database

import (
	"context"
	"streak-pickem-go/logging"
	"streak-pickem-go/models"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// stateDocument wraps a user's streak state for storage
type stateDocument struct {
	UserKey   string           `bson:"_id"`
	State     models.UserState `bson:"state"`
	UpdatedAt time.Time        `bson:"updatedAt"`
}

// MongoStateRepository stores per-user streak state. Reads always succeed:
// a missing document or a failed read comes back as a fresh default state,
// and day/week rollovers are applied before the state is returned.
type MongoStateRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoStateRepository creates a new MongoDB state repository
func NewMongoStateRepository(db *MongoDB) *MongoStateRepository {
	return &MongoStateRepository{
		collection: db.database.Collection("user_states"),
		now:        time.Now,
	}
}

// Get loads the user's state, normalized to the current day and week.
func (r *MongoStateRepository) Get(ctx context.Context, userKey string) (models.UserState, error) {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	now := r.now()

	var doc stateDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": userKey}).Decode(&doc)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			logging.WithPrefix("StateRepo").Warnf("Read failed for %s, using default state: %v", userKey, err)
		}
		return models.NewUserState(now), nil
	}

	return doc.State.Normalize(now), nil
}

// Update applies fn to the user's normalized state and writes the result
// back. The updated state is returned even when the write fails; state
// persistence is best effort and never blocks gameplay.
func (r *MongoStateRepository) Update(ctx context.Context, userKey string, fn func(models.UserState) models.UserState) (models.UserState, error) {
	state, err := r.Get(ctx, userKey)
	if err != nil {
		return state, err
	}

	state = fn(state)

	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	doc := stateDocument{
		UserKey:   userKey,
		State:     state,
		UpdatedAt: r.now(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": userKey}, doc, opts); err != nil {
		logging.WithPrefix("StateRepo").Warnf("Write failed for %s, state kept in memory: %v", userKey, err)
	}

	return state, nil
}
