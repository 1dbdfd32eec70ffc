package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawhaven/backend/internal/models"
	"github.com/pawhaven/backend/internal/repositories"
	"github.com/pawhaven/backend/internal/services"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository     repositories.UserRepository
	verifiedRepository repositories.VerifiedUserRepository
	adminRepository    repositories.AdminRepository
	directory          services.Directory
	jwtSecret          string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, verifiedRepo repositories.VerifiedUserRepository, adminRepo repositories.AdminRepository, directory services.Directory, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository:     userRepo,
		verifiedRepository: verifiedRepo,
		adminRepository:    adminRepo,
		directory:          directory,
		jwtSecret:          jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// RegisterProtectedRoutes registers auth routes that require a valid JWT
func (h *AuthHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.PUT("/me/fcm-token", h.UpdateFCMToken)
}

// Register handles new user registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Email must be unique across all three identity stores
	if _, _, err := h.directory.ResolveByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "An account with this email already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.generateJWT(user.ID, models.KindUser, user.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": user})
}

// Login authenticates any identity kind by email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, hash, err := h.directory.ResolveByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.generateJWT(identity.ID, identity.Kind, identity.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "identity": identity})
}

// UpdateFCMToken stores the caller's device token for push delivery
func (h *AuthHandler) UpdateFCMToken(c echo.Context) error {
	claims := identityFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req struct {
		Token string `json:"token" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var err error
	switch claims.Kind {
	case models.KindUser:
		err = h.userRepository.SetFCMToken(claims.UserID, req.Token)
	case models.KindVerified:
		err = h.verifiedRepository.SetFCMToken(claims.UserID, req.Token)
	case models.KindAdmin:
		err = h.adminRepository.SetFCMToken(claims.UserID, req.Token)
	default:
		return echo.NewHTTPError(http.StatusUnauthorized, "Unknown identity kind")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// generateJWT generates a JWT token for a given identity
func (h *AuthHandler) generateJWT(id uint, kind models.IdentityKind, email string) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: id,
		Kind:   kind,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
