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

// PetRepository defines the interface for pet data operations
type PetRepository interface {
	CreatePet(ctx context.Context, pet *models.Pet) error
	GetPetByID(ctx context.Context, id string) (*models.Pet, error)
	ListPets(ctx context.Context, status models.PetStatus) ([]models.Pet, error)
	UpdateStatus(ctx context.Context, id string, status models.PetStatus) error
}

// MongoPetRepository implements PetRepository for MongoDB
type MongoPetRepository struct {
	collection *mongo.Collection
}

// NewMongoPetRepository creates a new MongoPetRepository
func NewMongoPetRepository(db *mongo.Database) *MongoPetRepository {
	return &MongoPetRepository{collection: db.Collection("pets")}
}

// CreatePet registers a new pet in MongoDB
func (r *MongoPetRepository) CreatePet(ctx context.Context, pet *models.Pet) error {
	pet.ID = primitive.NewObjectID()
	if pet.Status == "" {
		pet.Status = models.PetAvailable
	}
	pet.CreatedAt = time.Now()
	pet.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, pet)
	return err
}

// GetPetByID retrieves a pet by ID from MongoDB
func (r *MongoPetRepository) GetPetByID(ctx context.Context, id string) (*models.Pet, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids cannot name any document.
		return nil, ErrNotFound
	}

	var pet models.Pet
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&pet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pet, nil
}

// ListPets retrieves pets, optionally filtered by availability, newest first
func (r *MongoPetRepository) ListPets(ctx context.Context, status models.PetStatus) ([]models.Pet, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	var pets []models.Pet
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// UpdateStatus flips a pet's availability
func (r *MongoPetRepository) UpdateStatus(ctx context.Context, id string, status models.PetStatus) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids cannot name any document.
		return ErrNotFound
	}

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
