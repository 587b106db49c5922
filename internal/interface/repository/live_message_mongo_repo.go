package repository

import (
	"context"
	"time"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLiveMessageRepository is the durable registry variant, for deployments
// where live sessions must survive a restart. Expiry is delegated to a Mongo
// TTL index on updatedAt.
type MongoLiveMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoLiveMessageRepository creates a new Mongo-backed registry
func NewMongoLiveMessageRepository(db *mongo.Database, ttl time.Duration) repository.LiveMessageRepository {
	collection := db.Collection("live_messages")

	ctx := context.Background()

	// Unique index on recipientId
	recipientIndex := mongo.IndexModel{
		Keys:    bson.M{"recipientId": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, recipientIndex)

	// TTL index so stale live sessions expire server-side
	ttlIndex := mongo.IndexModel{
		Keys:    bson.M{"updatedAt": 1},
		Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
	}
	collection.Indexes().CreateOne(ctx, ttlIndex)

	return &MongoLiveMessageRepository{
		collection: collection,
	}
}

// Get finds the tracked live message for a recipient, nil when absent.
func (r *MongoLiveMessageRepository) Get(ctx context.Context, recipientID int64) (*entity.LiveMessage, error) {
	var msg entity.LiveMessage
	err := r.collection.FindOne(ctx, bson.M{"recipientId": recipientID}).Decode(&msg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Put upserts the live message for a recipient.
func (r *MongoLiveMessageRepository) Put(ctx context.Context, recipientID int64, messageID int64) error {
	update := bson.M{"$set": bson.M{
		"recipientId": recipientID,
		"messageId":   messageID,
		"updatedAt":   time.Now(),
	}}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"recipientId": recipientID}, update, opts)
	return err
}

// Delete drops the entry for a recipient.
func (r *MongoLiveMessageRepository) Delete(ctx context.Context, recipientID int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"recipientId": recipientID})
	return err
}
