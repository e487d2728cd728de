package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
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
	ErrorTypeValidation   = "https://tally.app/errors/validation"
	ErrorTypeNotFound     = "https://tally.app/errors/not-found"
	ErrorTypeUnauthorized = "https://tally.app/errors/unauthorized"
	ErrorTypeUnavailable  = "https://tally.app/errors/unavailable"
	ErrorTypeInternal     = "https://tally.app/errors/internal"
)

const dateLayout = "2006-01-02"

func problem(c echo.Context, status int, errType, title, detail string, errs []ValidationError) error {
	return c.JSON(status, ProblemDetails{
		Type:     errType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errs,
	})
}

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return problem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", detail, errors)
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return problem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", detail, nil)
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", detail, nil)
}

// NewServiceUnavailableError creates a 503 response for features that are not configured
func NewServiceUnavailableError(c echo.Context, detail string) error {
	return problem(c, http.StatusServiceUnavailable, ErrorTypeUnavailable, "Service Unavailable", detail, nil)
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return problem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", detail, nil)
}

// fieldFor names the request field a validation error refers to
func fieldFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrNameRequired), errors.Is(err, domain.ErrNameTooLong):
		return "name"
	case errors.Is(err, domain.ErrCategoryRequired), errors.Is(err, domain.ErrCategoryTooLong):
		return "category"
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return "description"
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrInvalidAmountPrecision), errors.Is(err, domain.ErrAmountOutOfRange):
		return "amount"
	case errors.Is(err, domain.ErrInvalidEntryKind):
		return "kind"
	case errors.Is(err, domain.ErrDateRequired):
		return "date"
	case errors.Is(err, domain.ErrInvalidDayOfMonth):
		return "dayOfMonth"
	case errors.Is(err, domain.ErrInvalidFrequency), errors.Is(err, domain.ErrUnsupportedFrequency):
		return "frequency"
	case errors.Is(err, domain.ErrEndDateBeforeStart):
		return "endDate"
	case errors.Is(err, domain.ErrInvalidAssetType):
		return "type"
	case errors.Is(err, domain.ErrAssetClassRequired):
		return "isAsset"
	case errors.Is(err, domain.ErrInvalidGoalStatus):
		return "status"
	case errors.Is(err, domain.ErrInvalidMonth):
		return "month"
	case errors.Is(err, domain.ErrInvalidYear):
		return "year"
	}
	return ""
}

// respondServiceError maps domain error kinds onto problem responses
func respondServiceError(c echo.Context, err error, operation string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError(c, err.Error())
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidPeriod):
		var details []ValidationError
		if field := fieldFor(err); field != "" {
			details = []ValidationError{{Field: field, Message: err.Error()}}
		}
		return NewValidationError(c, "Validation failed", details)
	case errors.Is(err, service.ErrExportStorageNotConfigured):
		return NewServiceUnavailableError(c, "Export storage is not configured")
	}

	log.Error().Err(err).Str("operation", operation).Str("path", c.Request().URL.Path).Msg("Request failed")
	return NewInternalError(c, "Failed to "+operation)
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseAmount parses a decimal amount sent as a string. Empty is rejected.
func parseAmount(raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// parseOptionalAmount is parseAmount for fields that may be omitted
func parseOptionalAmount(raw *string) (*decimal.Decimal, bool) {
	if raw == nil {
		return nil, true
	}
	amount, ok := parseAmount(*raw)
	if !ok {
		return nil, false
	}
	return &amount, true
}

func invalidAmount(c echo.Context, field string) error {
	return NewValidationError(c, "Invalid amount", []ValidationError{
		{Field: field, Message: "Must be a valid decimal number"},
	})
}

// parseDate parses an optional YYYY-MM-DD field
func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseIDParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parsePeriodParams reads :year and :month. Range checks are left to the services.
func parsePeriodParams(c echo.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return 0, 0, false
	}
	return year, month, true
}
