/*
ledger.go - The material stock ledger

PURPOSE:
  The Ledger is the single entry point for reading materials and for
  adjusting stock. Production deducts consumed materials here and nowhere
  else.

CRITICAL INVARIANTS:
  1. CurrentStock >= 0: an adjustment that would go negative is rejected
     whole; nothing is applied.
  2. SINGLE MUTATION PATH: only AdjustStock writes CurrentStock. Material
     CRUD goes through Save, which is for the inventory screens, not for
     production.

READ-ONLY SNAPSHOTS:
  Get/List return copies. Mutating a returned Material does not affect
  stored state; callers must go through AdjustStock or Save.

SEE ALSO:
  - production/manager.go: deducts stock inside a store transaction
  - store/memory, store/sqlite: Store implementations
*/
package inventory

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STORE - Persistence interface consumed by the ledger
// =============================================================================

// Store handles material persistence. Implementations must return copies
// and preserve insertion order in List.
type Store interface {
	GetMaterial(ctx context.Context, id string) (*Material, error)
	ListMaterials(ctx context.Context) ([]Material, error)
	SaveMaterial(ctx context.Context, m Material) error
	DeleteMaterial(ctx context.Context, id string) error
}

// =============================================================================
// LEDGER
// =============================================================================

// Ledger exposes read access to materials and the atomic stock-adjustment
// operation.
type Ledger interface {
	// Get returns the material or ErrMaterialNotFound.
	Get(ctx context.Context, id string) (*Material, error)

	// List returns all materials in insertion order.
	List(ctx context.Context) ([]Material, error)

	// AdjustStock applies a delta (negative for consumption) to a
	// material's CurrentStock. Rejects with StockNegativeError if the
	// result would be negative; nothing is applied on failure.
	AdjustStock(ctx context.Context, id string, delta decimal.Decimal) error
}

// DefaultLedger implements Ledger over a Store. Construct one over a
// transactional store view to make a sequence of adjustments atomic.
type DefaultLedger struct {
	Store Store
}

func NewLedger(store Store) *DefaultLedger {
	return &DefaultLedger{Store: store}
}

func (l *DefaultLedger) Get(ctx context.Context, id string) (*Material, error) {
	return l.Store.GetMaterial(ctx, id)
}

func (l *DefaultLedger) List(ctx context.Context) ([]Material, error) {
	return l.Store.ListMaterials(ctx)
}

func (l *DefaultLedger) AdjustStock(ctx context.Context, id string, delta decimal.Decimal) error {
	m, err := l.Store.GetMaterial(ctx, id)
	if err != nil {
		return err
	}

	next := m.CurrentStock.Add(delta)
	if next.IsNegative() {
		return &StockNegativeError{
			MaterialID:   m.ID,
			MaterialName: m.Name,
			Current:      m.CurrentStock,
			Delta:        delta,
		}
	}

	m.CurrentStock = next
	return l.Store.SaveMaterial(ctx, *m)
}
