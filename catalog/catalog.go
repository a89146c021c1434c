package catalog

import (
	"context"
	"errors"
	"fmt"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrFormulaNotFound is returned when a formula id does not resolve.
	ErrFormulaNotFound = errors.New("formula not found")

	// ErrClientNotFound is returned when a client id does not resolve.
	ErrClientNotFound = errors.New("client not found")
)

// ValidationError reports malformed catalog input at the boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// =============================================================================
// STORES - Persistence interfaces consumed by production and the API
// =============================================================================

// FormulaStore handles formula persistence. Get returns
// ErrFormulaNotFound for unknown ids; List preserves insertion order.
type FormulaStore interface {
	GetFormula(ctx context.Context, id string) (*Formula, error)
	ListFormulas(ctx context.Context) ([]Formula, error)
	SaveFormula(ctx context.Context, f Formula) error
	DeleteFormula(ctx context.Context, id string) error
}

// ClientStore handles client persistence.
type ClientStore interface {
	GetClient(ctx context.Context, id string) (*Client, error)
	ListClients(ctx context.Context) ([]Client, error)
	SaveClient(ctx context.Context, c Client) error
	DeleteClient(ctx context.Context, id string) error
}

// ListApprovedFormulas filters the catalog down to what production may
// use.
func ListApprovedFormulas(ctx context.Context, store FormulaStore) ([]Formula, error) {
	all, err := store.ListFormulas(ctx)
	if err != nil {
		return nil, err
	}
	var approved []Formula
	for _, f := range all {
		if f.IsApproved() {
			approved = append(approved, f)
		}
	}
	return approved, nil
}
