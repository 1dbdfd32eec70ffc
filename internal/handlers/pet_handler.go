package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawhaven/backend/internal/models"
	"github.com/pawhaven/backend/internal/repositories"
)

// PetHandler handles pet-record HTTP requests
type PetHandler struct {
	petRepository repositories.PetRepository
}

// NewPetHandler creates a new PetHandler
func NewPetHandler(petRepo repositories.PetRepository) *PetHandler {
	return &PetHandler{petRepository: petRepo}
}

// RegisterPetRoutes registers the read-only pet routes
func (h *PetHandler) RegisterPetRoutes(g *echo.Group) {
	g.GET("/pets", h.ListPets)
	g.GET("/pets/:id", h.GetPet)
}

// RegisterAdminRoutes registers the admin-only pet routes
func (h *PetHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/pets", h.CreatePet)
}

// ListPets returns pets, optionally filtered by availability status
func (h *PetHandler) ListPets(c echo.Context) error {
	status := models.PetStatus(c.QueryParam("status"))
	pets, err := h.petRepository.ListPets(c.Request().Context(), status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": pets})
}

// GetPet returns a single pet by id
func (h *PetHandler) GetPet(c echo.Context) error {
	pet, err := h.petRepository.GetPetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Pet not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": pet})
}

// CreatePet registers a new adoptable pet
func (h *PetHandler) CreatePet(c echo.Context) error {
	var req models.CreatePetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pet := &models.Pet{
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		AgeMonths:   req.AgeMonths,
		Gender:      req.Gender,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Status:      models.PetAvailable,
	}
	if err := h.petRepository.CreatePet(c.Request().Context(), pet); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": pet})
}
