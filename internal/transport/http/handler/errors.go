package handler

import (
	"errors"
	"net/http"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer     = "Internal server error"
	errInvalidBody        = "Invalid request body"
	errValidationFailed   = "Validation failed"
	errEmailExists        = "Email already exists"
	errInvalidCredentials = "Invalid credentials"
	errUnauthorized       = "Unauthorized"
	errContactNotFound    = "Contact not found"
	errAddressNotFound    = "Address not found"
)

type validationResponse struct {
	Error      string             `json:"error"`
	Violations []domain.Violation `json:"violations"`
}

// writeValidation answers 400 with every violation when err carries a
// *domain.ValidationError. It reports whether it wrote a response.
func writeValidation(c *gin.Context, err error) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	c.JSON(http.StatusBadRequest, validationResponse{Error: errValidationFailed, Violations: verr.Violations})
	return true
}
