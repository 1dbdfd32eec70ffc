package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipientKind is the closed set of identity stores a notification
// recipient can resolve against.
type RecipientKind string

const (
	RecipientAdmin    RecipientKind = "admin"
	RecipientVerified RecipientKind = "verified"
)

// Notification is a fire-and-forget message to one recipient (MongoDB).
// Immutable once created except for the read flag.
type Notification struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RecipientID   uint               `json:"recipient_id" bson:"recipient_id"`
	RecipientKind RecipientKind      `json:"recipient_kind" bson:"recipient_kind"`
	Message       string             `json:"message" bson:"message"`
	Category      string             `json:"category" bson:"category"` // e.g. "adoption"
	AdoptionID    string             `json:"adoption_id,omitempty" bson:"adoption_id,omitempty"`
	ImageURL      string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Read          bool               `json:"read" bson:"read"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}
