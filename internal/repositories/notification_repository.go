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

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	CreateNotifications(ctx context.Context, notifications []*models.Notification) error
	GetByRecipient(ctx context.Context, recipientID uint, kind models.RecipientKind) ([]models.Notification, error)
	UnreadCount(ctx context.Context, recipientID uint, kind models.RecipientKind) (int64, error)
	MarkAsRead(ctx context.Context, id string) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// CreateNotification inserts a single notification
func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

// CreateNotifications inserts a batch of notifications in one write
func (r *MongoNotificationRepository) CreateNotifications(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	docs := make([]interface{}, len(notifications))
	now := time.Now()
	for i, n := range notifications {
		n.ID = primitive.NewObjectID()
		n.CreatedAt = now
		docs[i] = n
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByRecipient retrieves a recipient's notifications, newest first
func (r *MongoNotificationRepository) GetByRecipient(ctx context.Context, recipientID uint, kind models.RecipientKind) ([]models.Notification, error) {
	var notifications []models.Notification
	filter := bson.M{"recipient_id": recipientID, "recipient_kind": kind}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a recipient
func (r *MongoNotificationRepository) UnreadCount(ctx context.Context, recipientID uint, kind models.RecipientKind) (int64, error) {
	filter := bson.M{"recipient_id": recipientID, "recipient_kind": kind, "read": false}
	return r.collection.CountDocuments(ctx, filter)
}

// MarkAsRead flips the read flag. Idempotent for known ids; unknown ids
// report ErrNotFound.
func (r *MongoNotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids cannot name any document.
		return ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
