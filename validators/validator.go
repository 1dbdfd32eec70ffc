package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator wraps go-playground/validator for echo.
type RequestValidator struct {
	validator *validator.Validate
}

// NewValidator creates a RequestValidator for wiring into echo's e.Validator.
func NewValidator() *RequestValidator {
	return &RequestValidator{validator: validator.New()}
}

// Validate validates a struct using its validate tags.
func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
