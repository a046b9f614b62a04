package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/vdab/fietsen/internal/app/models/dto"
)

// HandleBindingError writes a 400 response for a request that failed to bind.
// Validator failures are reported per field.
func HandleBindingError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		details := dto.NewValidationErrors()
		for _, e := range fieldErrors {
			details.AddError(e.Field(), formatValidationError(e))
		}
		errorDetail = errorDetail.WithMessagef("Validation failed").WithDetails(details.Errors)
	} else {
		errorDetail = errorDetail.WithDetails(err.Error())
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min", "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "number", "decimal":
		return e.Field() + " must be a number"
	case "nonnegative":
		return e.Field() + " cannot be negative"
	case "trimmed":
		return e.Field() + " cannot be blank"
	case "datetime":
		return e.Field() + " must be a date formatted as " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
