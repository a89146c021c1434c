/*
store.go - Persistence interfaces consumed by the lifecycle manager

PURPOSE:
  Defines what the manager needs from its persistence collaborator. The
  concrete stores (store/memory, store/sqlite) implement everything in
  one struct; these interfaces keep the manager testable against either.

TRANSACTIONS:
  WithTx gives the manager an atomic view over batches AND materials
  together. Starting production is a stock-check-then-deduct sequence
  across both collections; it must commit whole or not at all.

SEE ALSO:
  - store/memory/memory.go: snapshot/rollback implementation
  - store/sqlite/sqlite.go: database-transaction implementation
*/
package production

import (
	"context"

	"github.com/formlab/production-engine/inventory"
)

// BatchStore handles batch persistence. Get returns ErrBatchNotFound for
// unknown ids; List preserves insertion order; Save upserts by id.
type BatchStore interface {
	GetBatch(ctx context.Context, id string) (*Batch, error)
	ListBatches(ctx context.Context) ([]Batch, error)
	SaveBatch(ctx context.Context, b Batch) error
	DeleteBatch(ctx context.Context, id string) error
}

// Store bundles the collections the manager mutates together: the batch
// collection and the material inventory.
type Store interface {
	BatchStore
	inventory.Store
}

// TxStore adds transactional execution over a Store.
type TxStore interface {
	Store

	// WithTx executes fn against a transactional view. If fn returns an
	// error, every write made through the view is rolled back.
	WithTx(ctx context.Context, fn func(Store) error) error
}
