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

// AdoptionRepository defines the interface for adoption application data operations
type AdoptionRepository interface {
	CreateAdoption(ctx context.Context, adoption *models.Adoption) error
	GetAdoptionByID(ctx context.Context, id string) (*models.Adoption, error)
	Transition(ctx context.Context, id string, status models.AdoptionStatus, extra bson.M) error
	ListByStatus(ctx context.Context, statuses ...models.AdoptionStatus) ([]models.Adoption, error)
	RecentPending(ctx context.Context, limit int64) ([]models.Adoption, error)
	SetFeedback(ctx context.Context, id string, rating int, text string) error
}

// MongoAdoptionRepository implements AdoptionRepository for MongoDB
type MongoAdoptionRepository struct {
	collection *mongo.Collection
}

// NewMongoAdoptionRepository creates a new MongoAdoptionRepository
func NewMongoAdoptionRepository(db *mongo.Database) *MongoAdoptionRepository {
	return &MongoAdoptionRepository{collection: db.Collection("adoptions")}
}

// CreateAdoption inserts a new application in MongoDB
func (r *MongoAdoptionRepository) CreateAdoption(ctx context.Context, adoption *models.Adoption) error {
	adoption.ID = primitive.NewObjectID()
	adoption.CreatedAt = time.Now()
	adoption.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, adoption)
	return err
}

// GetAdoptionByID retrieves an application by ID from MongoDB
func (r *MongoAdoptionRepository) GetAdoptionByID(ctx context.Context, id string) (*models.Adoption, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids cannot name any document.
		return nil, ErrNotFound
	}

	var adoption models.Adoption
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&adoption)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &adoption, nil
}

// Transition sets the new status plus any transition-specific fields in a
// single document update.
func (r *MongoAdoptionRepository) Transition(ctx context.Context, id string, status models.AdoptionStatus, extra bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids cannot name any document.
		return ErrNotFound
	}

	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	for k, v := range extra {
		set[k] = v
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByStatus retrieves applications in any of the given statuses, newest first
func (r *MongoAdoptionRepository) ListByStatus(ctx context.Context, statuses ...models.AdoptionStatus) ([]models.Adoption, error) {
	var adoptions []models.Adoption
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"status": bson.M{"$in": statuses}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &adoptions); err != nil {
		return nil, err
	}
	return adoptions, nil
}

// RecentPending retrieves the most recently submitted pending applications, newest first
func (r *MongoAdoptionRepository) RecentPending(ctx context.Context, limit int64) ([]models.Adoption, error) {
	var adoptions []models.Adoption
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"status": models.AdoptionPending}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &adoptions); err != nil {
		return nil, err
	}
	return adoptions, nil
}

// SetFeedback attaches a rating and comment to a completed application
func (r *MongoAdoptionRepository) SetFeedback(ctx context.Context, id string, rating int, text string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids cannot name any document.
		return ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"feedback_rating": rating,
		"feedback_text":   text,
		"updated_at":      time.Now(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
