/*
manager.go - Production batch lifecycle manager

PURPOSE:
  Owns the batch collection and drives the state machine:

            PlanBatch                StartProduction          CompleteProduction
   (none) ────────────► planned ──────────────────► in_progress ────────► completed
     │    StartBatchNow                                   │
     └──────────────────────────────► in_progress          │ CancelProduction
                                           │               ▼
                          CancelProduction │          cancelled
                                           ▼
                                      cancelled

  Stock is deducted exactly once, on the planned -> in_progress
  transition, through the inventory ledger. completed and cancelled are
  terminal.

ATOMICITY:
  StartProduction re-checks every ingredient line against CURRENT stock
  (not creation-time stock) inside a store transaction, then deducts all
  lines and flips the status. Either everything commits or nothing does;
  partial deduction is never observable. A manager-level mutex
  serializes concurrent starts so two near-simultaneous starts cannot
  both pass the check against stale stock.

FAILURE SEMANTICS:
  - Validation and not-found errors are detected before any mutation.
  - A stock shortage is not an error: StartProduction returns a
    StartResult with Started=false and the full shortage list so the UI
    can prompt the user. The batch stays planned.
  - Illegal transitions fail hard with InvalidTransitionError.

SEE ALSO:
  - costing.go: creation-time pricing
  - inventory/ledger.go: the single stock mutation path
*/
package production

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/formlab/production-engine/catalog"
	"github.com/formlab/production-engine/inventory"
)

// RestoreStockOnCancel controls whether cancelling an in-progress batch
// returns its deducted materials to inventory. The lab treats materials
// as consumed once production starts (opened containers, mixed phases),
// so this stays false. Flip it if that policy ever changes; the state
// machine itself is unaffected.
const RestoreStockOnCancel = false

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns the production batch collection.
type Manager struct {
	Store    TxStore
	Formulas catalog.FormulaStore
	Clients  catalog.ClientStore
	Numbers  *BatchNumberGenerator

	// Now is the clock; overridable in tests.
	Now func() time.Time

	// startMu serializes the check-then-deduct critical section.
	startMu sync.Mutex

	// resumeMu guards the one-time replay of persisted batch numbers.
	resumeMu       sync.Mutex
	numbersResumed bool
}

func NewManager(store TxStore, formulas catalog.FormulaStore, clients catalog.ClientStore) *Manager {
	return &Manager{
		Store:    store,
		Formulas: formulas,
		Clients:  clients,
		Numbers:  NewBatchNumberGenerator(),
		Now:      time.Now,
	}
}

// =============================================================================
// CREATION
// =============================================================================

// CreateBatchInput is the caller's batch request.
type CreateBatchInput struct {
	FormulaID      string
	ClientID       string // optional
	UnitsToProduce int
	VolumePerUnit  decimal.Decimal // ml
	ProductionDate time.Time
	PlannedDate    *time.Time // set = plan for later, unset = start now
	ProducedBy     string
	Notes          string
}

// StartResult reports the outcome of a start attempt. A shortage is data,
// not an error: Started is false and Shortages carries one entry per
// material that is short.
type StartResult struct {
	Started   bool
	Shortages []StockWarning
}

// CreateResult is the combined outcome of CreateBatch.
type CreateResult struct {
	Batch    *Batch
	Warnings []StockWarning // advisory creation-time shortages
	Start    *StartResult   // set only on the immediate-start path
}

// CreateBatch is the convenience entry point: with a planned date it
// plans the batch for later, without one it plans and immediately starts
// it (deducting stock as part of creation).
func (m *Manager) CreateBatch(ctx context.Context, in CreateBatchInput) (*CreateResult, error) {
	if in.PlannedDate != nil {
		batch, warnings, err := m.PlanBatch(ctx, in)
		if err != nil {
			return nil, err
		}
		return &CreateResult{Batch: batch, Warnings: warnings}, nil
	}
	return m.StartBatchNow(ctx, in)
}

// PlanBatch creates a batch in the planned state. Stock is not touched;
// shortages at the current stock level are returned as advisory warnings.
func (m *Manager) PlanBatch(ctx context.Context, in CreateBatchInput) (*Batch, []StockWarning, error) {
	batch, warnings, err := m.buildBatch(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	if err := m.Store.SaveBatch(ctx, *batch); err != nil {
		return nil, nil, err
	}
	return batch, warnings, nil
}

// StartBatchNow creates a batch and immediately starts it. If stock is
// short the batch is left planned and the StartResult reports the
// shortages; nothing is deducted.
func (m *Manager) StartBatchNow(ctx context.Context, in CreateBatchInput) (*CreateResult, error) {
	batch, warnings, err := m.PlanBatch(ctx, in)
	if err != nil {
		return nil, err
	}
	start, err := m.StartProduction(ctx, batch.ID)
	if err != nil {
		return nil, err
	}
	// Re-read: the start flipped status and set timestamps.
	batch, err = m.Store.GetBatch(ctx, batch.ID)
	if err != nil {
		return nil, err
	}
	return &CreateResult{Batch: batch, Warnings: warnings, Start: start}, nil
}

func (m *Manager) buildBatch(ctx context.Context, in CreateBatchInput) (*Batch, []StockWarning, error) {
	if in.FormulaID == "" {
		return nil, nil, &ValidationError{Field: "formulaId", Message: "required"}
	}
	if in.UnitsToProduce < 1 {
		return nil, nil, &ValidationError{Field: "unitsToProduce", Message: "must be at least 1"}
	}
	if !in.VolumePerUnit.IsPositive() {
		return nil, nil, &ValidationError{Field: "volumePerUnit", Message: "must be positive"}
	}
	if in.ProductionDate.IsZero() {
		return nil, nil, &ValidationError{Field: "productionDate", Message: "required"}
	}

	formula, err := m.Formulas.GetFormula(ctx, in.FormulaID)
	if err != nil {
		return nil, nil, err
	}
	if !formula.IsApproved() {
		return nil, nil, fmt.Errorf("formula %q (status %s): %w", formula.Name, formula.Status, ErrFormulaNotApproved)
	}

	var clientName string
	if in.ClientID != "" {
		client, err := m.Clients.GetClient(ctx, in.ClientID)
		if err != nil {
			return nil, nil, err
		}
		clientName = client.Name
	}

	scale, err := ComputeScale(formula.BatchSizeGrams, in.UnitsToProduce, in.VolumePerUnit)
	if err != nil {
		return nil, nil, err
	}

	costing, err := Cost(ctx, formula, scale, inventory.NewLedger(m.Store))
	if err != nil {
		return nil, nil, err
	}

	if err := m.resumeBatchNumbers(ctx); err != nil {
		return nil, nil, err
	}

	now := m.Now()
	units := decimal.NewFromInt(int64(in.UnitsToProduce))
	batch := &Batch{
		ID:          uuid.NewString(),
		BatchNumber: m.Numbers.Next(now),

		FormulaID:      formula.ID,
		FormulaName:    formula.Name,
		FormulaVersion: formula.Version,
		ClientID:       in.ClientID,
		ClientName:     clientName,

		UnitsToProduce:   in.UnitsToProduce,
		VolumePerUnit:    in.VolumePerUnit,
		TotalVolume:      units.Mul(in.VolumePerUnit),
		TotalWeightGrams: formula.BatchSizeGrams.Mul(scale),
		ScaleFactor:      scale,

		ProductionDate: in.ProductionDate,
		PlannedDate:    in.PlannedDate,

		Status:      StatusPlanned,
		Ingredients: costing.Ingredients,
		TotalCost:   costing.TotalCost,
		CostPerUnit: costing.TotalCost.Div(units),

		ProducedBy: in.ProducedBy,
		Notes:      in.Notes,

		CreatedAt: now,
		UpdatedAt: now,
	}
	return batch, costing.Warnings, nil
}

// resumeBatchNumbers replays every stored batch number into the
// generator, once per process. Without the replay a restart would begin
// today's sequence at 0001 again and collide with batch numbers already
// persisted for the day.
func (m *Manager) resumeBatchNumbers(ctx context.Context) error {
	m.resumeMu.Lock()
	defer m.resumeMu.Unlock()
	if m.numbersResumed {
		return nil
	}

	batches, err := m.Store.ListBatches(ctx)
	if err != nil {
		return err
	}
	for _, b := range batches {
		m.Numbers.Observe(b.BatchNumber)
	}
	m.numbersResumed = true
	return nil
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// StartProduction moves a planned batch to in_progress, deducting every
// ingredient's requirement from material stock. Valid only from planned.
//
// The stock check runs against CURRENT stock inside the store
// transaction; creation-time warnings are irrelevant here. On shortage,
// nothing is deducted, the batch stays planned, and the result lists
// every short material.
func (m *Manager) StartProduction(ctx context.Context, batchID string) (*StartResult, error) {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	var result *StartResult
	err := m.Store.WithTx(ctx, func(tx Store) error {
		batch, err := tx.GetBatch(ctx, batchID)
		if err != nil {
			return err
		}
		if batch.Status != StatusPlanned {
			return &InvalidTransitionError{BatchID: batchID, From: batch.Status, To: StatusInProgress}
		}

		ledger := inventory.NewLedger(tx)

		// Check every line before touching anything.
		var shortages []StockWarning
		for _, line := range batch.Ingredients {
			material, err := ledger.Get(ctx, line.MaterialID)
			if err != nil {
				return fmt.Errorf("ingredient %q: %w", line.MaterialName, err)
			}
			if material.CurrentStock.LessThan(line.RequiredKilograms()) {
				shortages = append(shortages, StockWarning{
					MaterialID:   material.ID,
					MaterialName: material.Name,
					RequiredKg:   line.RequiredKilograms(),
					AvailableKg:  material.CurrentStock,
				})
			}
		}
		if len(shortages) > 0 {
			result = &StartResult{Started: false, Shortages: shortages}
			return nil
		}

		// All sufficient: deduct every line.
		for _, line := range batch.Ingredients {
			if err := ledger.AdjustStock(ctx, line.MaterialID, line.RequiredKilograms().Neg()); err != nil {
				return fmt.Errorf("deducting %q: %w", line.MaterialName, err)
			}
		}

		now := m.Now()
		batch.Status = StatusInProgress
		batch.StartedAt = &now
		batch.UpdatedAt = now
		if err := tx.SaveBatch(ctx, *batch); err != nil {
			return err
		}

		result = &StartResult{Started: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CompleteProduction moves an in_progress batch to completed. No stock
// effect: consumption happened at start. Completing an already-completed
// batch is an idempotent no-op.
func (m *Manager) CompleteProduction(ctx context.Context, batchID string) error {
	batch, err := m.Store.GetBatch(ctx, batchID)
	if err != nil {
		return err
	}
	if batch.Status == StatusCompleted {
		return nil
	}
	if batch.Status != StatusInProgress {
		return &InvalidTransitionError{BatchID: batchID, From: batch.Status, To: StatusCompleted}
	}

	now := m.Now()
	batch.Status = StatusCompleted
	batch.CompletedAt = &now
	batch.UpdatedAt = now
	return m.Store.SaveBatch(ctx, *batch)
}

// CancelProduction moves a planned or in_progress batch to cancelled.
// Stock already deducted by a start is NOT restored unless
// RestoreStockOnCancel is flipped - see the constant's doc.
func (m *Manager) CancelProduction(ctx context.Context, batchID string) error {
	return m.Store.WithTx(ctx, func(tx Store) error {
		batch, err := tx.GetBatch(ctx, batchID)
		if err != nil {
			return err
		}
		if batch.Status.IsTerminal() {
			return &InvalidTransitionError{BatchID: batchID, From: batch.Status, To: StatusCancelled}
		}

		if RestoreStockOnCancel && batch.Status == StatusInProgress {
			ledger := inventory.NewLedger(tx)
			for _, line := range batch.Ingredients {
				if err := ledger.AdjustStock(ctx, line.MaterialID, line.RequiredKilograms()); err != nil {
					return fmt.Errorf("restoring %q: %w", line.MaterialName, err)
				}
			}
		}

		batch.Status = StatusCancelled
		batch.UpdatedAt = m.Now()
		return tx.SaveBatch(ctx, *batch)
	})
}

// DeleteBatch removes a batch unconditionally. No stock reversal
// regardless of prior status.
func (m *Manager) DeleteBatch(ctx context.Context, batchID string) error {
	if _, err := m.Store.GetBatch(ctx, batchID); err != nil {
		return err
	}
	return m.Store.DeleteBatch(ctx, batchID)
}

// =============================================================================
// READS
// =============================================================================

// GetBatch returns a batch or ErrBatchNotFound.
func (m *Manager) GetBatch(ctx context.Context, batchID string) (*Batch, error) {
	return m.Store.GetBatch(ctx, batchID)
}

// ListBatches returns batches filtered and sorted per the query.
func (m *Manager) ListBatches(ctx context.Context, q Query) ([]Batch, error) {
	batches, err := m.Store.ListBatches(ctx)
	if err != nil {
		return nil, err
	}
	return q.Apply(batches), nil
}
