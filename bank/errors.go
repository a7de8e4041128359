package bank

import "fmt"

// Operation errors. Every failure is terminal for the operation and leaves
// prior state untouched; the caller corrects input and resubmits.
var (
	// ErrValidation covers missing or blank required fields.
	ErrValidation = fmt.Errorf("validation failed")
	// ErrNoSession is returned when an operation requires an
	// authenticated session and none is active.
	ErrNoSession = fmt.Errorf("no active session")
	// ErrNotFound is returned for unknown card or friend IDs.
	ErrNotFound = fmt.Errorf("not found")
	// ErrQuotaExceeded means the card count is at the plan limit.
	ErrQuotaExceeded = fmt.Errorf("card quota exceeded")
	// ErrPlanRestricted means the requested category is gated behind the
	// premium plan.
	ErrPlanRestricted = fmt.Errorf("restricted to premium plan")
	// ErrLimitExceeded means a credit request is above the non-premium
	// ceiling.
	ErrLimitExceeded = fmt.Errorf("credit amount above plan ceiling")
	// ErrInsufficientFunds means a transfer source balance is short.
	ErrInsufficientFunds = fmt.Errorf("insufficient funds")
	// ErrConflict signals a card number collision on insert.
	ErrConflict = fmt.Errorf("conflict")
)
