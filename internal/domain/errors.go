package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific error below wraps exactly one of these so callers
// can classify with errors.Is.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrValidation    = errors.New("validation failed")
	ErrInvalidPeriod = errors.New("invalid period")
	ErrUnauthorized  = errors.New("unauthorized")
)

// Not found errors
var (
	ErrOwnerNotFound    = fmt.Errorf("owner: %w", ErrNotFound)
	ErrEntryNotFound    = fmt.Errorf("ledger entry: %w", ErrNotFound)
	ErrRuleNotFound     = fmt.Errorf("recurring rule: %w", ErrNotFound)
	ErrBalanceNotFound  = fmt.Errorf("period balance: %w", ErrNotFound)
	ErrNetWorthNotFound = fmt.Errorf("net worth snapshot: %w", ErrNotFound)
	ErrAssetNotFound    = fmt.Errorf("asset: %w", ErrNotFound)
	ErrGoalNotFound     = fmt.Errorf("goal: %w", ErrNotFound)
)

// Validation errors
var (
	ErrNameRequired           = fmt.Errorf("%w: name is required", ErrValidation)
	ErrNameTooLong            = fmt.Errorf("%w: name exceeds maximum length", ErrValidation)
	ErrCategoryRequired       = fmt.Errorf("%w: category is required", ErrValidation)
	ErrCategoryTooLong        = fmt.Errorf("%w: category exceeds maximum length", ErrValidation)
	ErrDescriptionTooLong     = fmt.Errorf("%w: description exceeds maximum length", ErrValidation)
	ErrInvalidAmount          = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrNegativeAmount         = fmt.Errorf("%w: amount must not be negative", ErrValidation)
	ErrInvalidAmountPrecision = fmt.Errorf("%w: amount has more than two decimal places", ErrValidation)
	ErrAmountOutOfRange       = fmt.Errorf("%w: amount must be less than 1000000000000", ErrValidation)
	ErrInvalidEntryKind       = fmt.Errorf("%w: kind must be income or expense", ErrValidation)
	ErrDateRequired           = fmt.Errorf("%w: date is required", ErrValidation)
	ErrInvalidDayOfMonth      = fmt.Errorf("%w: day of month must be between 1 and 31", ErrValidation)
	ErrInvalidFrequency       = fmt.Errorf("%w: unknown frequency", ErrValidation)
	ErrUnsupportedFrequency   = fmt.Errorf("%w: only monthly frequency is supported", ErrValidation)
	ErrEndDateBeforeStart     = fmt.Errorf("%w: end date is before start date", ErrValidation)
	ErrInvalidProjectionMode  = fmt.Errorf("%w: unknown projection mode", ErrValidation)
	ErrInvalidAssetType       = fmt.Errorf("%w: asset type must be car, property, savings, investment or other", ErrValidation)
	ErrAssetClassRequired     = fmt.Errorf("%w: isAsset is required", ErrValidation)
	ErrInvalidGoalStatus      = fmt.Errorf("%w: status must be in_progress, completed or cancelled", ErrValidation)
)

// Period errors
var (
	ErrInvalidMonth = fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidPeriod)
	ErrInvalidYear  = fmt.Errorf("%w: year must be between %d and %d", ErrInvalidPeriod, MinYear, MaxYear)
)

// Validation constants
const (
	MaxNameLength        = 255
	MaxCategoryLength    = 100
	MaxDescriptionLength = 500
	MinYear              = 2000
	MaxYear              = 2100
)
