package domain

import "errors"

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternalError    = errors.New("internal error")
	ErrContractNotFound = errors.New("contract not found")
	ErrBudgetNotFound   = errors.New("budget not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrPersonNotFound   = errors.New("person not found")
	ErrNegativeTaxRate  = errors.New("tax rate must not be negative")
	ErrMissingTaxRate   = errors.New("sample has no tax rate")
	ErrInvalidWindow    = errors.New("window must be at least one period")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrArchiveDisabled  = errors.New("report archive is not configured")
)

// Validation constants
const (
	MinYear       = 2000
	MaxYear       = 2100
	MaxWindowSize = 520
)
