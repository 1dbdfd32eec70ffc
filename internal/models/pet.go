package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PetStatus is the availability of a pet for adoption.
type PetStatus string

const (
	PetAvailable PetStatus = "available"
	PetAdopted   PetStatus = "adopted"
)

// Pet represents an adoptable animal stored in MongoDB
type Pet struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Species     string             `json:"species" bson:"species"`
	Breed       string             `json:"breed,omitempty" bson:"breed,omitempty"`
	AgeMonths   int                `json:"age_months" bson:"age_months"`
	Gender      string             `json:"gender,omitempty" bson:"gender,omitempty"`
	ImageURL    string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Status      PetStatus          `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePetRequest defines the request body for registering a new pet
type CreatePetRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Species     string `json:"species" validate:"required"`
	Breed       string `json:"breed,omitempty"`
	AgeMonths   int    `json:"age_months" validate:"min=0"`
	Gender      string `json:"gender,omitempty" validate:"omitempty,oneof=male female unknown"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
	Description string `json:"description,omitempty"`
}
