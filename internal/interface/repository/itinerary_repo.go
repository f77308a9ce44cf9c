package repository

import (
	"context"
	"errors"
	"time"

	"liveaboard-service/internal/domain/entity"
	"liveaboard-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// itineraryDocument is the single per-session document holding the whole
// serialized itinerary. Mutations replace the list wholesale, last write wins.
type itineraryDocument struct {
	SessionID string                     `bson:"_id"`
	Items     []entity.ItineraryLineItem `bson:"items"`
	UpdatedAt time.Time                  `bson:"updatedAt"`
}

// MongoItineraryRepository implements ItineraryRepository
type MongoItineraryRepository struct {
	collection *mongo.Collection
}

// NewMongoItineraryRepository creates a new itinerary repository
func NewMongoItineraryRepository(db *mongo.Database) repository.ItineraryRepository {
	collection := db.Collection("itineraries")

	// Expire abandoned itineraries after 30 days of inactivity
	ctx := context.Background()
	ttlIndex := mongo.IndexModel{
		Keys:    bson.M{"updatedAt": 1},
		Options: options.Index().SetExpireAfterSeconds(30 * 24 * 3600),
	}
	collection.Indexes().CreateOne(ctx, ttlIndex)

	return &MongoItineraryRepository{
		collection: collection,
	}
}

// Read loads a session's itinerary; (nil, nil) when none has been written yet
func (r *MongoItineraryRepository) Read(ctx context.Context, sessionID string) ([]entity.ItineraryLineItem, error) {
	var doc itineraryDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// Write replaces the session's itinerary with the given list
func (r *MongoItineraryRepository) Write(ctx context.Context, sessionID string, items []entity.ItineraryLineItem) error {
	if items == nil {
		items = []entity.ItineraryLineItem{}
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": sessionID},
		bson.M{"$set": bson.M{
			"items":     items,
			"updatedAt": time.Now(),
		}},
		opts,
	)
	return err
}
