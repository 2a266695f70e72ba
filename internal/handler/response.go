package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation    = "https://burnrate.app/errors/validation"
	ErrorTypeNotFound      = "https://burnrate.app/errors/not-found"
	ErrorTypeUnprocessable = "https://burnrate.app/errors/unprocessable"
	ErrorTypeUnavailable   = "https://burnrate.app/errors/unavailable"
	ErrorTypeInternal      = "https://burnrate.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnprocessableError is used when stored data cannot be turned into a report,
// e.g. a contract with a negative tax rate
func NewUnprocessableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnprocessableEntity, ProblemDetails{
		Type:     ErrorTypeUnprocessable,
		Title:    "Unprocessable Entity",
		Status:   http.StatusUnprocessableEntity,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnavailableError creates a service unavailable error response
func NewUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// respondServiceError maps domain errors to problem responses. Anything unknown is
// logged and reported as an internal error with the given message.
func respondServiceError(c echo.Context, err error, msg string) error {
	switch {
	case errors.Is(err, domain.ErrContractNotFound):
		return NewNotFoundError(c, "Contract not found")
	case errors.Is(err, domain.ErrBudgetNotFound):
		return NewNotFoundError(c, "Budget not found")
	case errors.Is(err, domain.ErrProjectNotFound):
		return NewNotFoundError(c, "Project not found")
	case errors.Is(err, domain.ErrPersonNotFound):
		return NewNotFoundError(c, "Person not found")
	case errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError(c, "Resource not found")
	case errors.Is(err, domain.ErrInvalidWindow),
		errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, domain.ErrNegativeTaxRate),
		errors.Is(err, domain.ErrMissingTaxRate):
		return NewUnprocessableError(c, err.Error())
	case errors.Is(err, domain.ErrArchiveDisabled):
		return NewUnavailableError(c, "Report archive is not configured")
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg(msg)
	return NewInternalError(c, msg)
}
