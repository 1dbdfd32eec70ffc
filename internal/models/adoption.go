package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdoptionStatus tracks where an application sits in the review flow.
type AdoptionStatus string

const (
	AdoptionPending  AdoptionStatus = "pending"
	AdoptionAccepted AdoptionStatus = "accepted"
	AdoptionRejected AdoptionStatus = "rejected"
	AdoptionComplete AdoptionStatus = "complete"
	AdoptionFailed   AdoptionStatus = "failed"
)

// legalTransitions lists, per current status, the statuses an admin action
// may move an application to. Absent keys are terminal.
var legalTransitions = map[AdoptionStatus][]AdoptionStatus{
	AdoptionPending:  {AdoptionAccepted, AdoptionRejected},
	AdoptionAccepted: {AdoptionComplete, AdoptionFailed},
}

// CanTransition reports whether moving to next is a legal admin transition.
func (s AdoptionStatus) CanTransition(next AdoptionStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further admin transition is possible.
func (s AdoptionStatus) IsTerminal() bool {
	return len(legalTransitions[s]) == 0
}

// Adoption represents one applicant's request for one pet, stored in MongoDB.
// Applicant and pet fields are denormalized at submission time so history
// screens render without joins even if the source records change later.
type Adoption struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ApplicantID      uint               `json:"applicant_id" bson:"applicant_id"`
	ApplicantName    string             `json:"applicant_name" bson:"applicant_name"`
	ApplicantEmail   string             `json:"applicant_email" bson:"applicant_email"`
	ApplicantPhone   string             `json:"applicant_phone" bson:"applicant_phone"`
	ApplicantAddress string             `json:"applicant_address" bson:"applicant_address"`
	Survey           AdoptionSurvey     `json:"survey" bson:"survey"`
	PetID            string             `json:"pet_id" bson:"pet_id"`
	PetName          string             `json:"pet_name" bson:"pet_name"`
	PetImage         string             `json:"pet_image,omitempty" bson:"pet_image,omitempty"`
	Status           AdoptionStatus     `json:"status" bson:"status"`

	// Set only by the corresponding transition.
	VisitDate       string `json:"visit_date,omitempty" bson:"visit_date,omitempty"`
	VisitTime       string `json:"visit_time,omitempty" bson:"visit_time,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	FailedReason    string `json:"failed_reason,omitempty" bson:"failed_reason,omitempty"`

	// Optional feedback attached after completion.
	FeedbackRating int    `json:"feedback_rating,omitempty" bson:"feedback_rating,omitempty"`
	FeedbackText   string `json:"feedback_text,omitempty" bson:"feedback_text,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// AdoptionSurvey holds the household questionnaire answers captured on submission.
type AdoptionSurvey struct {
	HousingType   string `json:"housing_type" bson:"housing_type"`
	HasYard       bool   `json:"has_yard" bson:"has_yard"`
	HouseholdSize int    `json:"household_size" bson:"household_size"`
	HasOtherPets  bool   `json:"has_other_pets" bson:"has_other_pets"`
	Experience    string `json:"experience,omitempty" bson:"experience,omitempty"`
}

// SubmitAdoptionRequest defines the request body for submitting an application
type SubmitAdoptionRequest struct {
	PetID         string `json:"pet_id" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	HousingType   string `json:"housing_type" validate:"required,oneof=house apartment other"`
	HasYard       bool   `json:"has_yard"`
	HouseholdSize int    `json:"household_size" validate:"required,min=1"`
	HasOtherPets  bool   `json:"has_other_pets"`
	Experience    string `json:"experience,omitempty"`
}

// ApproveAdoptionRequest defines the request body for scheduling a visit
type ApproveAdoptionRequest struct {
	VisitDate string `json:"visitDate" validate:"required"`
	VisitTime string `json:"visitTime" validate:"required"`
}

// DeclineAdoptionRequest defines the request body for declining an application
type DeclineAdoptionRequest struct {
	RejectionReason string `json:"rejection_reason" validate:"required"`
}

// FailAdoptionRequest defines the request body for marking a visit as failed
type FailAdoptionRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// FeedbackRequest defines the request body for post-adoption feedback
type FeedbackRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"required"`
}
