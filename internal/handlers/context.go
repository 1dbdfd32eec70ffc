package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/pawhaven/backend/internal/models"
)

// identityFromContext returns the authenticated identity's claims, or nil
// when the request carries none.
func identityFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get("identity").(*models.JwtCustomClaims)
	return claims
}
