package services

import (
	"context"
	"log"

	"firebase.google.com/go/v4/messaging"
	"github.com/pawhaven/backend/internal/models"
)

// PushService mirrors real-time emissions to Firebase Cloud Messaging so
// backgrounded mobile clients still hear about updates.
type PushService struct {
	client *messaging.Client
}

// NewPushService creates a PushService. A nil client disables push entirely
// (dev mode, or no service account configured).
func NewPushService(client *messaging.Client) *PushService {
	if client == nil {
		log.Println("FCM: no messaging client configured, push notifications disabled")
	}
	return &PushService{client: client}
}

// Send delivers a push notification to an identity's registered device.
// No-op when push is disabled or the identity has no device token; failures
// are logged and never propagated.
func (p *PushService) Send(recipient models.Identity, title, body string) {
	if p == nil || p.client == nil || recipient.FCMToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: recipient.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}

	if _, err := p.client.Send(context.Background(), msg); err != nil {
		log.Printf("FCM: failed to send to %s %d: %v", recipient.Kind, recipient.ID, err)
	}
}
