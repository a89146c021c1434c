/*
errors.go - Error types for the inventory package

ERROR CATEGORIES:
  1. Not-found errors - referenced material does not resolve
  2. Stock errors - adjustment would violate the non-negative invariant
  3. Validation errors - malformed material input at the boundary

USAGE:
  Callers match with errors.Is:

    if errors.Is(err, inventory.ErrStockNegative) {
        // adjustment rejected, nothing was applied
    }
*/
package inventory

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMaterialNotFound is returned when a material id does not resolve.
	ErrMaterialNotFound = errors.New("material not found")

	// ErrStockNegative is returned when a stock adjustment would take
	// CurrentStock below zero. The adjustment is not applied.
	ErrStockNegative = errors.New("stock adjustment would go negative")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// StockNegativeError reports a rejected stock adjustment.
type StockNegativeError struct {
	MaterialID   string
	MaterialName string
	Current      decimal.Decimal
	Delta        decimal.Decimal
}

func (e *StockNegativeError) Error() string {
	return fmt.Sprintf("stock for %s would go negative: current %s, delta %s",
		e.MaterialName, e.Current, e.Delta)
}

func (e *StockNegativeError) Unwrap() error { return ErrStockNegative }

// ValidationError reports malformed material input (bad unit, bad status,
// negative stock level on create).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
