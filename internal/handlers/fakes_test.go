package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pawhaven/backend/internal/models"
	"github.com/pawhaven/backend/internal/repositories"
	"github.com/pawhaven/backend/validators"
)

// --- echo plumbing ---

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

func newTestContext(e *echo.Echo, method, path, body string, claims *models.JwtCustomClaims) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set("identity", claims)
	}
	return c, rec
}

// --- adoption repository ---

type fakeAdoptionRepo struct {
	adoptions map[string]*models.Adoption
}

func newFakeAdoptionRepo() *fakeAdoptionRepo {
	return &fakeAdoptionRepo{adoptions: make(map[string]*models.Adoption)}
}

func (f *fakeAdoptionRepo) CreateAdoption(_ context.Context, a *models.Adoption) error {
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.adoptions[a.ID.Hex()] = a
	return nil
}

func (f *fakeAdoptionRepo) GetAdoptionByID(_ context.Context, id string) (*models.Adoption, error) {
	a, ok := f.adoptions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAdoptionRepo) Transition(_ context.Context, id string, status models.AdoptionStatus, extra bson.M) error {
	a, ok := f.adoptions[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	for k, v := range extra {
		s, _ := v.(string)
		switch k {
		case "visit_date":
			a.VisitDate = s
		case "visit_time":
			a.VisitTime = s
		case "rejection_reason":
			a.RejectionReason = s
		case "failed_reason":
			a.FailedReason = s
		}
	}
	return nil
}

func (f *fakeAdoptionRepo) ListByStatus(_ context.Context, statuses ...models.AdoptionStatus) ([]models.Adoption, error) {
	var out []models.Adoption
	for _, a := range f.adoptions {
		for _, s := range statuses {
			if a.Status == s {
				out = append(out, *a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeAdoptionRepo) RecentPending(ctx context.Context, limit int64) ([]models.Adoption, error) {
	pending, err := f.ListByStatus(ctx, models.AdoptionPending)
	if err != nil {
		return nil, err
	}
	if int64(len(pending)) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (f *fakeAdoptionRepo) SetFeedback(_ context.Context, id string, rating int, text string) error {
	a, ok := f.adoptions[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.FeedbackRating = rating
	a.FeedbackText = text
	return nil
}

// --- pet repository ---

type fakePetRepo struct {
	pets map[string]*models.Pet
}

func newFakePetRepo() *fakePetRepo {
	return &fakePetRepo{pets: make(map[string]*models.Pet)}
}

func (f *fakePetRepo) addPet(name string) *models.Pet {
	pet := &models.Pet{
		ID:     primitive.NewObjectID(),
		Name:   name,
		Status: models.PetAvailable,
	}
	f.pets[pet.ID.Hex()] = pet
	return pet
}

func (f *fakePetRepo) CreatePet(_ context.Context, pet *models.Pet) error {
	pet.ID = primitive.NewObjectID()
	if pet.Status == "" {
		pet.Status = models.PetAvailable
	}
	f.pets[pet.ID.Hex()] = pet
	return nil
}

func (f *fakePetRepo) GetPetByID(_ context.Context, id string) (*models.Pet, error) {
	pet, ok := f.pets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *pet
	return &copied, nil
}

func (f *fakePetRepo) ListPets(_ context.Context, status models.PetStatus) ([]models.Pet, error) {
	var out []models.Pet
	for _, pet := range f.pets {
		if status == "" || pet.Status == status {
			out = append(out, *pet)
		}
	}
	return out, nil
}

func (f *fakePetRepo) UpdateStatus(_ context.Context, id string, status models.PetStatus) error {
	pet, ok := f.pets[id]
	if !ok {
		return repositories.ErrNotFound
	}
	pet.Status = status
	return nil
}

// --- activity repository ---

type fakeActivityRepo struct {
	entries []models.Activity
}

func (f *fakeActivityRepo) Append(a *models.Activity) error {
	a.ID = uint(len(f.entries) + 1)
	a.CreatedAt = time.Now()
	f.entries = append(f.entries, *a)
	return nil
}

func (f *fakeActivityRepo) ListRecent(limit int) ([]models.Activity, error) {
	if len(f.entries) > limit {
		return f.entries[len(f.entries)-limit:], nil
	}
	return f.entries, nil
}

// --- notification repository ---

type fakeNotificationRepo struct {
	notifications []*models.Notification
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now()
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) CreateNotifications(ctx context.Context, ns []*models.Notification) error {
	for _, n := range ns {
		if err := f.CreateNotification(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeNotificationRepo) GetByRecipient(_ context.Context, recipientID uint, kind models.RecipientKind) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		n := f.notifications[i]
		if n.RecipientID == recipientID && n.RecipientKind == kind {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) UnreadCount(_ context.Context, recipientID uint, kind models.RecipientKind) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && n.RecipientKind == kind && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, id string) error {
	for _, n := range f.notifications {
		if n.ID.Hex() == id {
			n.Read = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

// --- message repository ---

type fakeMessageRepo struct {
	messages []*models.Message
}

func (f *fakeMessageRepo) CreateMessage(_ context.Context, m *models.Message) error {
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().Add(time.Duration(len(f.messages)) * time.Millisecond)
	f.messages = append(f.messages, m)
	return nil
}

func matchesPair(m *models.Message, a, b models.IdentityRef) bool {
	return (m.Sender() == a && m.Receiver() == b) || (m.Sender() == b && m.Receiver() == a)
}

func (f *fakeMessageRepo) GetConversation(_ context.Context, a, b models.IdentityRef) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if matchesPair(m, a, b) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) LatestBetween(_ context.Context, a, b models.IdentityRef) (*models.Message, error) {
	for i := len(f.messages) - 1; i >= 0; i-- {
		if matchesPair(f.messages[i], a, b) {
			copied := *f.messages[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// --- directory and publisher ---

type fakeDirectory struct {
	identities []models.Identity
	passwords  map[string]string
}

func (f *fakeDirectory) Resolve(ref models.IdentityRef) (*models.Identity, error) {
	for _, identity := range f.identities {
		if identity.Ref() == ref {
			return &identity, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeDirectory) ResolveByEmail(email string) (*models.Identity, string, error) {
	for _, identity := range f.identities {
		if identity.Email == email {
			return &identity, f.passwords[email], nil
		}
	}
	return nil, "", repositories.ErrNotFound
}

func (f *fakeDirectory) Admins() ([]models.Identity, error) {
	var admins []models.Identity
	for _, identity := range f.identities {
		if identity.Kind == models.KindAdmin {
			admins = append(admins, identity)
		}
	}
	return admins, nil
}

func (f *fakeDirectory) All() ([]models.Identity, error) {
	return f.identities, nil
}

type emission struct {
	recipient models.IdentityRef
	event     string
	payload   any
}

type fakePublisher struct {
	emitted []emission
}

func (f *fakePublisher) Emit(recipient models.IdentityRef, event string, payload any) {
	f.emitted = append(f.emitted, emission{recipient, event, payload})
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// httpCode extracts the status code from a handler error
func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusOK
}
