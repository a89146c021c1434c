/*
errors.go - Centralized error types for the production engine

ERROR CATEGORIES:
  1. Validation errors - malformed batch creation input
  2. Not-found errors - unresolved batch/formula/client references
  3. State errors - illegal lifecycle transitions
  4. Stock shortage - reported as data (StartResult), not as an error;
     the sentinel here exists for callers that prefer errors.Is checks

USAGE:
    if errors.Is(err, production.ErrFormulaNotApproved) {
        // only approved formulas may be produced
    }
*/
package production

import (
	"errors"
	"fmt"

	"github.com/formlab/production-engine/catalog"
	"github.com/formlab/production-engine/inventory"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrBatchNotFound is returned when a batch id does not resolve.
	ErrBatchNotFound = errors.New("batch not found")

	// ErrFormulaNotApproved is returned when creating a batch from a
	// formula whose status is not approved.
	ErrFormulaNotApproved = errors.New("formula is not approved for production")

	// ErrInvalidInput is returned for malformed costing inputs
	// (units < 1, volume <= 0).
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorruptFormula is returned when a formula's reference batch size
	// is not positive. This is a data-integrity fault, not a user error.
	ErrCorruptFormula = errors.New("formula batch size must be positive")

	// ErrInvalidTransition is returned for lifecycle calls that the state
	// machine does not allow.
	ErrInvalidTransition = errors.New("invalid batch state transition")

	// ErrInsufficientStock signals that a start was rejected because at
	// least one material is short. StartProduction reports this via
	// StartResult rather than returning it; the sentinel backs
	// StockShortageError for callers that want an error form.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Re-exported collaborator sentinels so callers can match every failure
// of the engine against one package.
var (
	ErrFormulaNotFound  = catalog.ErrFormulaNotFound
	ErrClientNotFound   = catalog.ErrClientNotFound
	ErrMaterialNotFound = inventory.ErrMaterialNotFound
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports malformed input to batch creation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InvalidTransitionError reports an illegal lifecycle call.
type InvalidTransitionError struct {
	BatchID string
	From    BatchStatus
	To      BatchStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("batch %s: cannot transition %s -> %s", e.BatchID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// StockShortageError carries the full shortage list from a rejected start.
type StockShortageError struct {
	BatchID   string
	Shortages []StockWarning
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("batch %s: %d material(s) short of stock", e.BatchID, len(e.Shortages))
}

func (e *StockShortageError) Unwrap() error { return ErrInsufficientStock }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether the error is any unresolved reference.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBatchNotFound) ||
		errors.Is(err, ErrFormulaNotFound) ||
		errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrMaterialNotFound)
}

// IsClientError reports whether the error is due to invalid caller input
// rather than an internal fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrFormulaNotApproved) ||
		errors.Is(err, ErrInsufficientStock) ||
		IsNotFound(err)
}
