package models

import (
	"github.com/golang-jwt/jwt/v4"
)

// IdentityKind tags which identity store a reference resolves against.
type IdentityKind string

const (
	KindUser     IdentityKind = "user"
	KindVerified IdentityKind = "verified"
	KindAdmin    IdentityKind = "admin"
)

// User is a registered account that has not completed verification (PostgreSQL)
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"` // bcrypt hash, never serialized
	FCMToken string `json:"-"`
}

// VerifiedUser is an account cleared to submit adoption applications (PostgreSQL)
type VerifiedUser struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Password string `json:"-"`
	FCMToken string `json:"-"`
}

// Admin is a staff account that reviews applications (PostgreSQL)
type Admin struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"`
	FCMToken string `json:"-"`
}

// IdentityRef names one identity unambiguously. The three stores keep
// independent serial sequences, so a bare numeric id is not unique across
// kinds; every channel address and cross-store lookup carries the kind.
type IdentityRef struct {
	ID   uint         `json:"id"`
	Kind IdentityKind `json:"kind"`
}

// Identity is the kind-tagged view of any directory entry.
type Identity struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Kind     IdentityKind `json:"kind"`
	FCMToken string       `json:"-"`
}

// Ref returns the identity's unambiguous reference
func (i Identity) Ref() IdentityRef {
	return IdentityRef{ID: i.ID, Kind: i.Kind}
}

// RegisterRequest defines the request body for user registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for signing in any identity kind
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint         `json:"user_id"`
	Kind   IdentityKind `json:"kind"`
	Email  string       `json:"email"`
	jwt.RegisteredClaims
}

// Ref returns the authenticated identity's unambiguous reference
func (c *JwtCustomClaims) Ref() IdentityRef {
	return IdentityRef{ID: c.UserID, Kind: c.Kind}
}
