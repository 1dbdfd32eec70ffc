package services

import (
	"context"
	"fmt"
	"log"

	"github.com/pawhaven/backend/internal/models"
	"github.com/pawhaven/backend/internal/repositories"
)

// Event names on the real-time channel. Clients depend on these exact
// strings.
const (
	EventNotification     = "receiveNotification"
	EventUserNotification = "receiveUserNotification"
	EventMessage          = "receiveMessage"
)

// EventPublisher pushes a named event to one identity's channel, addressed
// by the full kind-qualified reference. Delivery is best-effort: recipients
// without a joined session miss the live push and rely on the persisted
// record.
type EventPublisher interface {
	Emit(recipient models.IdentityRef, event string, payload any)
}

// statusMessages maps an adoption status to the sentence shown to the
// applicant. Unknown statuses fall back to a generic update line.
var statusMessages = map[models.AdoptionStatus]string{
	models.AdoptionPending:  "Your adoption application has been received and is awaiting review.",
	models.AdoptionAccepted: "Great news! Your adoption application has been accepted. Check your scheduled visit.",
	models.AdoptionRejected: "Unfortunately your adoption application has been declined.",
	models.AdoptionComplete: "Congratulations! Your adoption is complete. Welcome your new family member!",
	models.AdoptionFailed:   "Your adoption could not be completed after the visit.",
}

const fallbackStatusMessage = "There is an update on your adoption application."

// Dispatcher translates domain events into persisted notification records
// and best-effort real-time pushes.
type Dispatcher struct {
	notifications repositories.NotificationRepository
	directory     Directory
	publisher     EventPublisher
	push          *PushService
}

// NewDispatcher creates a Dispatcher. The publisher is injected so no
// controller takes a direct dependency on the transport.
func NewDispatcher(notifications repositories.NotificationRepository, directory Directory, publisher EventPublisher, push *PushService) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		directory:     directory,
		publisher:     publisher,
		push:          push,
	}
}

// NotifyAdminsOnNewAdoption creates one notification per admin and emits
// each to that admin's channel.
func (d *Dispatcher) NotifyAdminsOnNewAdoption(ctx context.Context, adoptionID, applicantName, petName, petImage string) error {
	admins, err := d.directory.Admins()
	if err != nil {
		return fmt.Errorf("resolve admins: %w", err)
	}
	if len(admins) == 0 {
		return nil
	}

	message := fmt.Sprintf("%s submitted an adoption application for %s", applicantName, petName)
	notifications := make([]*models.Notification, len(admins))
	for i, admin := range admins {
		notifications[i] = &models.Notification{
			RecipientID:   admin.ID,
			RecipientKind: models.RecipientAdmin,
			Message:       message,
			Category:      "adoption",
			AdoptionID:    adoptionID,
			ImageURL:      petImage,
		}
	}

	if err := d.notifications.CreateNotifications(ctx, notifications); err != nil {
		return fmt.Errorf("persist admin notifications: %w", err)
	}

	for i, admin := range admins {
		d.publisher.Emit(admin.Ref(), EventNotification, notifications[i])
		d.push.Send(admin, "New adoption application", message)
	}
	return nil
}

// NotifyUserOnAdoptionUpdate persists a status-change notification for the
// applicant and emits it to their channel. Applicants are always verified
// users; the emission and push resolve against that store only.
func (d *Dispatcher) NotifyUserOnAdoptionUpdate(ctx context.Context, userID uint, status models.AdoptionStatus, adoptionID string) error {
	message, ok := statusMessages[status]
	if !ok {
		message = fallbackStatusMessage
	}

	notification := &models.Notification{
		RecipientID:   userID,
		RecipientKind: models.RecipientVerified,
		Message:       message,
		Category:      "adoption",
		AdoptionID:    adoptionID,
	}
	if err := d.notifications.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("persist user notification: %w", err)
	}

	recipient := models.IdentityRef{ID: userID, Kind: models.KindVerified}
	d.publisher.Emit(recipient, EventUserNotification, notification)

	if identity, err := d.directory.Resolve(recipient); err == nil {
		d.push.Send(*identity, "Adoption update", message)
	} else {
		log.Printf("dispatcher: skip push, cannot resolve recipient %d: %v", userID, err)
	}
	return nil
}
