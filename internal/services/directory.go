package services

import (
	"errors"

	"github.com/pawhaven/backend/internal/models"
	"github.com/pawhaven/backend/internal/repositories"
	"gorm.io/gorm"
)

// Directory resolves identity references across the three underlying stores
// and tags each result with its kind.
type Directory interface {
	Resolve(ref models.IdentityRef) (*models.Identity, error)
	ResolveByEmail(email string) (*models.Identity, string, error)
	Admins() ([]models.Identity, error)
	All() ([]models.Identity, error)
}

type storeDirectory struct {
	users    repositories.UserRepository
	verified repositories.VerifiedUserRepository
	admins   repositories.AdminRepository
}

// NewDirectory creates a Directory backed by the user, verified-user and
// admin stores.
func NewDirectory(users repositories.UserRepository, verified repositories.VerifiedUserRepository, admins repositories.AdminRepository) Directory {
	return &storeDirectory{users: users, verified: verified, admins: admins}
}

// Resolve looks the reference up in the store its kind names. The stores
// issue ids independently, so the kind is part of the key; a numeric id
// never resolves against another kind's store.
func (d *storeDirectory) Resolve(ref models.IdentityRef) (*models.Identity, error) {
	switch ref.Kind {
	case models.KindUser:
		u, err := d.users.GetUserByID(ref.ID)
		if err != nil {
			return nil, mapLookupErr(err)
		}
		return &models.Identity{ID: u.ID, Name: u.Name, Email: u.Email, Kind: models.KindUser, FCMToken: u.FCMToken}, nil
	case models.KindVerified:
		v, err := d.verified.GetVerifiedUserByID(ref.ID)
		if err != nil {
			return nil, mapLookupErr(err)
		}
		return &models.Identity{ID: v.ID, Name: v.Name, Email: v.Email, Kind: models.KindVerified, FCMToken: v.FCMToken}, nil
	case models.KindAdmin:
		a, err := d.admins.GetAdminByID(ref.ID)
		if err != nil {
			return nil, mapLookupErr(err)
		}
		return &models.Identity{ID: a.ID, Name: a.Name, Email: a.Email, Kind: models.KindAdmin, FCMToken: a.FCMToken}, nil
	default:
		return nil, repositories.ErrNotFound
	}
}

// mapLookupErr normalizes the GORM not-found value to the shared sentinel
func mapLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return err
}

// ResolveByEmail finds an identity by email, checking users, then verified
// users, then admins. Registration keeps emails unique across all three
// stores, so at most one store matches. The stored password hash is returned
// alongside the identity.
func (d *storeDirectory) ResolveByEmail(email string) (*models.Identity, string, error) {
	if u, err := d.users.GetUserByEmail(email); err == nil {
		return &models.Identity{ID: u.ID, Name: u.Name, Email: u.Email, Kind: models.KindUser, FCMToken: u.FCMToken}, u.Password, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	if v, err := d.verified.GetVerifiedUserByEmail(email); err == nil {
		return &models.Identity{ID: v.ID, Name: v.Name, Email: v.Email, Kind: models.KindVerified, FCMToken: v.FCMToken}, v.Password, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	if a, err := d.admins.GetAdminByEmail(email); err == nil {
		return &models.Identity{ID: a.ID, Name: a.Name, Email: a.Email, Kind: models.KindAdmin, FCMToken: a.FCMToken}, a.Password, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	return nil, "", repositories.ErrNotFound
}

// Admins returns the full admin set
func (d *storeDirectory) Admins() ([]models.Identity, error) {
	admins, err := d.admins.GetAdmins()
	if err != nil {
		return nil, err
	}
	identities := make([]models.Identity, len(admins))
	for i, a := range admins {
		identities[i] = models.Identity{ID: a.ID, Name: a.Name, Email: a.Email, Kind: models.KindAdmin, FCMToken: a.FCMToken}
	}
	return identities, nil
}

// All returns every identity across the three stores, users first, then
// verified users, then admins.
func (d *storeDirectory) All() ([]models.Identity, error) {
	var identities []models.Identity

	users, err := d.users.GetUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		identities = append(identities, models.Identity{ID: u.ID, Name: u.Name, Email: u.Email, Kind: models.KindUser, FCMToken: u.FCMToken})
	}

	verified, err := d.verified.GetVerifiedUsers()
	if err != nil {
		return nil, err
	}
	for _, v := range verified {
		identities = append(identities, models.Identity{ID: v.ID, Name: v.Name, Email: v.Email, Kind: models.KindVerified, FCMToken: v.FCMToken})
	}

	admins, err := d.Admins()
	if err != nil {
		return nil, err
	}
	identities = append(identities, admins...)

	return identities, nil
}
