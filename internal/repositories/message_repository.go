package repositories

import (
	"context"
	"time"

	"github.com/pawhaven/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for direct-message data operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetConversation(ctx context.Context, a, b models.IdentityRef) ([]models.Message, error)
	LatestBetween(ctx context.Context, a, b models.IdentityRef) (*models.Message, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// CreateMessage persists a new message
func (r *MongoMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// pairFilter matches messages exchanged between two identities in either
// direction. Kind is part of each side's match: id alone is ambiguous
// across the identity stores.
func pairFilter(a, b models.IdentityRef) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"sender_id": a.ID, "sender_kind": a.Kind, "receiver_id": b.ID, "receiver_kind": b.Kind},
		bson.M{"sender_id": b.ID, "sender_kind": b.Kind, "receiver_id": a.ID, "receiver_kind": a.Kind},
	}}
}

// GetConversation retrieves all messages between two identities, oldest first
func (r *MongoMessageRepository) GetConversation(ctx context.Context, a, b models.IdentityRef) ([]models.Message, error) {
	var messages []models.Message
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, pairFilter(a, b), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// LatestBetween retrieves the most recent message between two identities,
// or ErrNotFound when they have never exchanged one.
func (r *MongoMessageRepository) LatestBetween(ctx context.Context, a, b models.IdentityRef) (*models.Message, error) {
	var message models.Message
	findOptions := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := r.collection.FindOne(ctx, pairFilter(a, b), findOptions).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}
