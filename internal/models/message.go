package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct communication between two identities (MongoDB).
// A conversation is the unordered pair {sender, receiver}. Both sides carry
// the identity kind: numeric ids repeat across the identity stores.
type Message struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SenderID     uint               `json:"sender_id" bson:"sender_id"`
	SenderKind   IdentityKind       `json:"sender_kind" bson:"sender_kind"`
	ReceiverID   uint               `json:"receiver_id" bson:"receiver_id"`
	ReceiverKind IdentityKind       `json:"receiver_kind" bson:"receiver_kind"`
	Text         string             `json:"text" bson:"text"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

// Sender returns the sending identity's reference
func (m *Message) Sender() IdentityRef {
	return IdentityRef{ID: m.SenderID, Kind: m.SenderKind}
}

// Receiver returns the receiving identity's reference
func (m *Message) Receiver() IdentityRef {
	return IdentityRef{ID: m.ReceiverID, Kind: m.ReceiverKind}
}

// SendMessageRequest defines the request body for sending a direct message
type SendMessageRequest struct {
	ReceiverID   uint         `json:"receiver_id" validate:"required"`
	ReceiverKind IdentityKind `json:"receiver_kind" validate:"required,oneof=user verified admin"`
	Text         string       `json:"text" validate:"required,min=1,max=2000"`
}

// ConversationPeer is one row of the conversation list: an identity plus
// its latest exchanged message, if any.
type ConversationPeer struct {
	Identity
	HasMessages   bool       `json:"has_messages"`
	LastMessage   string     `json:"last_message,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
}
