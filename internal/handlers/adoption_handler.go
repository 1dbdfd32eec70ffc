package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/pawhaven/backend/internal/models"
	"github.com/pawhaven/backend/internal/repositories"
	"github.com/pawhaven/backend/internal/services"
)

// AdoptionHandler drives the application lifecycle: submission, admin review
// transitions and the status projections.
type AdoptionHandler struct {
	adoptionRepository repositories.AdoptionRepository
	petRepository      repositories.PetRepository
	activityRepository repositories.ActivityRepository
	directory          services.Directory
	dispatcher         *services.Dispatcher
}

// NewAdoptionHandler creates a new AdoptionHandler
func NewAdoptionHandler(adoptionRepo repositories.AdoptionRepository, petRepo repositories.PetRepository, activityRepo repositories.ActivityRepository, directory services.Directory, dispatcher *services.Dispatcher) *AdoptionHandler {
	return &AdoptionHandler{
		adoptionRepository: adoptionRepo,
		petRepository:      petRepo,
		activityRepository: activityRepo,
		directory:          directory,
		dispatcher:         dispatcher,
	}
}

// RegisterAdoptionRoutes registers applicant-facing adoption routes
func (h *AdoptionHandler) RegisterAdoptionRoutes(g *echo.Group) {
	g.POST("/adoptions", h.Submit)
	g.POST("/adoptions/:id/feedback", h.SubmitFeedback)
}

// RegisterAdminRoutes registers the admin review routes
func (h *AdoptionHandler) RegisterAdminRoutes(g *echo.Group) {
	g.PUT("/adoptions/:id/approve", h.Approve)
	g.PUT("/adoptions/:id/decline", h.Decline)
	g.PUT("/adoptions/:id/complete", h.Complete)
	g.PUT("/adoptions/:id/fail", h.Fail)
	g.GET("/adoptions/pending", h.ListPending)
	g.GET("/adoptions/active", h.ListActive)
	g.GET("/adoptions/declined", h.ListDeclined)
	g.GET("/adoptions/past", h.ListPast)
	g.GET("/adoptions/recent", h.ListRecent)
}

// Submit creates a new application in pending status and fans a notification
// out to every admin.
func (h *AdoptionHandler) Submit(c echo.Context) error {
	claims := identityFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.SubmitAdoptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	applicant, err := h.directory.Resolve(claims.Ref())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Applicant not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if applicant.Kind != models.KindVerified {
		return echo.NewHTTPError(http.StatusUnauthorized, "Only verified users can submit applications")
	}

	pet, err := h.petRepository.GetPetByID(c.Request().Context(), req.PetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Pet not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Applicant and pet fields are denormalized so history screens stay
	// stable even if the source records change.
	adoption := &models.Adoption{
		ApplicantID:      applicant.ID,
		ApplicantName:    applicant.Name,
		ApplicantEmail:   applicant.Email,
		ApplicantPhone:   req.Phone,
		ApplicantAddress: req.Address,
		Survey: models.AdoptionSurvey{
			HousingType:   req.HousingType,
			HasYard:       req.HasYard,
			HouseholdSize: req.HouseholdSize,
			HasOtherPets:  req.HasOtherPets,
			Experience:    req.Experience,
		},
		PetID:    pet.ID.Hex(),
		PetName:  pet.Name,
		PetImage: pet.ImageURL,
		Status:   models.AdoptionPending,
	}

	if err := h.adoptionRepository.CreateAdoption(c.Request().Context(), adoption); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.dispatcher.NotifyAdminsOnNewAdoption(c.Request().Context(), adoption.ID.Hex(), applicant.Name, pet.Name, pet.ImageURL); err != nil {
		log.Printf("adoption: admin notification for %s failed: %v", adoption.ID.Hex(), err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": adoption})
}

// transition loads an adoption, validates the state change and applies it
// along with the transition-specific fields.
func (h *AdoptionHandler) transition(c echo.Context, next models.AdoptionStatus, extra bson.M) (*models.Adoption, error) {
	id := c.Param("id")
	adoption, err := h.adoptionRepository.GetAdoptionByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Adoption not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !adoption.Status.CanTransition(next) {
		return nil, echo.NewHTTPError(http.StatusConflict, "Cannot move application from "+string(adoption.Status)+" to "+string(next))
	}

	if err := h.adoptionRepository.Transition(c.Request().Context(), id, next, extra); err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	adoption.Status = next
	return adoption, nil
}

// logActivity appends an audit entry for an admin-initiated transition.
// Best-effort: a failed append never blocks the transition that already
// happened.
func (h *AdoptionHandler) logActivity(adminID uint, action string, adoption *models.Adoption, message string) {
	entry := &models.Activity{
		AdminID:     adminID,
		Action:      action,
		EntityKind:  "adoption",
		EntityID:    adoption.ID.Hex(),
		SubjectName: adoption.ApplicantName,
		Message:     message,
	}
	if err := h.activityRepository.Append(entry); err != nil {
		log.Printf("adoption: activity log append failed for %s: %v", adoption.ID.Hex(), err)
	}
}

// notifyApplicant dispatches the status-change notification. Emission
// failures are logged only; the write already succeeded.
func (h *AdoptionHandler) notifyApplicant(c echo.Context, adoption *models.Adoption) {
	if err := h.dispatcher.NotifyUserOnAdoptionUpdate(c.Request().Context(), adoption.ApplicantID, adoption.Status, adoption.ID.Hex()); err != nil {
		log.Printf("adoption: applicant notification for %s failed: %v", adoption.ID.Hex(), err)
	}
}

// Approve accepts a pending application and stores the visit schedule
func (h *AdoptionHandler) Approve(c echo.Context) error {
	claims := identityFromContext(c)
	if claims == nil || claims.Kind != models.KindAdmin {
		return echo.NewHTTPError(http.StatusUnauthorized, "Admin access required")
	}

	var req models.ApproveAdoptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	adoption, err := h.transition(c, models.AdoptionAccepted, bson.M{
		"visit_date": req.VisitDate,
		"visit_time": req.VisitTime,
	})
	if err != nil {
		return err
	}
	adoption.VisitDate = req.VisitDate
	adoption.VisitTime = req.VisitTime

	h.logActivity(claims.UserID, "approve", adoption, "Approved application for "+adoption.PetName)
	h.notifyApplicant(c, adoption)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": adoption})
}

// Decline rejects a pending application with a reason
func (h *AdoptionHandler) Decline(c echo.Context) error {
	claims := identityFromContext(c)
	if claims == nil || claims.Kind != models.KindAdmin {
		return echo.NewHTTPError(http.StatusUnauthorized, "Admin access required")
	}

	var req models.DeclineAdoptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	adoption, err := h.transition(c, models.AdoptionRejected, bson.M{
		"rejection_reason": req.RejectionReason,
	})
	if err != nil {
		return err
	}
	adoption.RejectionReason = req.RejectionReason

	h.logActivity(claims.UserID, "decline", adoption, "Declined application for "+adoption.PetName)
	h.notifyApplicant(c, adoption)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": adoption})
}

// Complete marks an accepted application as finished and flips the pet to
// adopted. The two writes are sequential with no shared transaction; a pet
// update failure after the adoption write is logged and left as-is.
func (h *AdoptionHandler) Complete(c echo.Context) error {
	claims := identityFromContext(c)
	if claims == nil || claims.Kind != models.KindAdmin {
		return echo.NewHTTPError(http.StatusUnauthorized, "Admin access required")
	}

	adoption, err := h.transition(c, models.AdoptionComplete, nil)
	if err != nil {
		return err
	}

	if err := h.petRepository.UpdateStatus(c.Request().Context(), adoption.PetID, models.PetAdopted); err != nil {
		log.Printf("adoption: pet %s status update failed after completing %s: %v", adoption.PetID, adoption.ID.Hex(), err)
	}

	h.logActivity(claims.UserID, "complete", adoption, "Completed adoption of "+adoption.PetName)
	h.notifyApplicant(c, adoption)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": adoption})
}

// Fail marks an accepted application as failed after the visit
func (h *AdoptionHandler) Fail(c echo.Context) error {
	claims := identityFromContext(c)
	if claims == nil || claims.Kind != models.KindAdmin {
		return echo.NewHTTPError(http.StatusUnauthorized, "Admin access required")
	}

	var req models.FailAdoptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	adoption, err := h.transition(c, models.AdoptionFailed, bson.M{
		"failed_reason": req.Reason,
	})
	if err != nil {
		return err
	}
	adoption.FailedReason = req.Reason

	h.logActivity(claims.UserID, "fail", adoption, "Marked adoption of "+adoption.PetName+" as failed")
	h.notifyApplicant(c, adoption)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": adoption})
}

// SubmitFeedback attaches a rating and comment to the caller's completed
// adoption
func (h *AdoptionHandler) SubmitFeedback(c echo.Context) error {
	claims := identityFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id := c.Param("id")
	adoption, err := h.adoptionRepository.GetAdoptionByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Adoption not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if adoption.ApplicantID != claims.UserID {
		return echo.NewHTTPError(http.StatusUnauthorized, "Feedback can only be left on your own adoption")
	}
	if adoption.Status != models.AdoptionComplete {
		return echo.NewHTTPError(http.StatusConflict, "Feedback can only be left on a completed adoption")
	}

	if err := h.adoptionRepository.SetFeedback(c.Request().Context(), id, req.Rating, req.Text); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	adoption.FeedbackRating = req.Rating
	adoption.FeedbackText = req.Text
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": adoption})
}

// listByStatus is the shared read-only projection over a status set
func (h *AdoptionHandler) listByStatus(c echo.Context, statuses ...models.AdoptionStatus) error {
	adoptions, err := h.adoptionRepository.ListByStatus(c.Request().Context(), statuses...)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": adoptions})
}

// ListPending returns applications awaiting review
func (h *AdoptionHandler) ListPending(c echo.Context) error {
	return h.listByStatus(c, models.AdoptionPending)
}

// ListActive returns accepted applications with a scheduled visit
func (h *AdoptionHandler) ListActive(c echo.Context) error {
	return h.listByStatus(c, models.AdoptionAccepted)
}

// ListDeclined returns rejected applications
func (h *AdoptionHandler) ListDeclined(c echo.Context) error {
	return h.listByStatus(c, models.AdoptionRejected)
}

// ListPast returns applications in any terminal status
func (h *AdoptionHandler) ListPast(c echo.Context) error {
	return h.listByStatus(c, models.AdoptionComplete, models.AdoptionRejected, models.AdoptionFailed)
}

// ListRecent returns the 5 most recently submitted pending applications,
// newest first, for the admin notification bell.
func (h *AdoptionHandler) ListRecent(c echo.Context) error {
	adoptions, err := h.adoptionRepository.RecentPending(c.Request().Context(), 5)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": adoptions})
}
