/*
Package production is the batch costing and material-reservation engine.

PURPOSE:
  Scales an approved formula to a requested output, prices every
  ingredient against current material stock, and drives each batch
  through its lifecycle - deducting consumed stock exactly once, when
  production starts.

KEY CONCEPTS IN THIS FILE (types.go):
  - Batch: one concrete manufacturing run scaled from a formula
  - BatchIngredient: a priced snapshot of one formula ingredient
  - StockWarning: advisory "not enough on hand" signal from costing
  - BatchStatus: the lifecycle state machine's states

DESIGN PRINCIPLES:
  1. Snapshots, not joins: a batch copies formula/client names and
     ingredient prices at creation. Later edits never rewrite history.
  2. Precision: decimal.Decimal for every mass and cost.
  3. Immutable scale: ScaleFactor is fixed at creation; a different
     output quantity means a new batch.

SEE ALSO:
  - costing.go: scale factor and ingredient pricing
  - manager.go: lifecycle transitions and stock deduction
  - query.go: filtering and sorting for presentation
*/
package production

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/formlab/production-engine/inventory"
)

// =============================================================================
// BATCH STATUS - Lifecycle states
// =============================================================================

// BatchStatus is a batch's lifecycle state.
//
//	planned -> in_progress -> completed
//	planned / in_progress -> cancelled
//
// completed and cancelled are terminal.
type BatchStatus string

const (
	StatusPlanned    BatchStatus = "planned"
	StatusInProgress BatchStatus = "in_progress"
	StatusCompleted  BatchStatus = "completed"
	StatusCancelled  BatchStatus = "cancelled"
)

func ParseBatchStatus(s string) (BatchStatus, error) {
	switch BatchStatus(s) {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusCancelled:
		return BatchStatus(s), nil
	}
	return "", &ValidationError{Field: "status", Message: "unknown batch status: " + s}
}

// IsTerminal reports whether no further transitions are allowed.
func (s BatchStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// =============================================================================
// BATCH INGREDIENT - Priced snapshot of one formula line
// =============================================================================

// BatchIngredient is a batch's copy of one formula ingredient, priced at
// creation time. Material price or stock changes after creation do not
// alter a batch's recorded cost.
type BatchIngredient struct {
	ID            string
	MaterialID    string
	MaterialName  string
	MaterialSKU   string
	RequiredGrams decimal.Decimal // weightGrams * scaleFactor
	UnitPrice     decimal.Decimal // currency per kg, at creation
	LineCost      decimal.Decimal // (RequiredGrams / 1000) * UnitPrice
	Phase         string
	Notes         string
}

// RequiredKilograms converts the gram-denominated requirement to the
// kilogram-denominated stock unit.
func (i BatchIngredient) RequiredKilograms() decimal.Decimal {
	return i.RequiredGrams.Div(inventory.GramsPerKilogram)
}

// =============================================================================
// STOCK WARNING - Advisory shortage signal
// =============================================================================

// StockWarning flags an ingredient whose requirement exceeds what is on
// hand. Advisory only: it never blocks batch creation, only starting.
type StockWarning struct {
	MaterialID   string
	MaterialName string
	RequiredKg   decimal.Decimal
	AvailableKg  decimal.Decimal
}

// Shortfall is how much is missing, in kilograms.
func (w StockWarning) Shortfall() decimal.Decimal {
	return w.RequiredKg.Sub(w.AvailableKg)
}

// =============================================================================
// BATCH
// =============================================================================

// Batch is one production run. The formula and client fields are
// denormalized snapshots taken at creation.
type Batch struct {
	ID          string
	BatchNumber string

	FormulaID      string
	FormulaName    string
	FormulaVersion string
	ClientID       string // optional
	ClientName     string

	UnitsToProduce   int
	VolumePerUnit    decimal.Decimal // ml
	TotalVolume      decimal.Decimal // ml, UnitsToProduce * VolumePerUnit
	TotalWeightGrams decimal.Decimal // formula batch size * ScaleFactor
	ScaleFactor      decimal.Decimal // fixed at creation

	ProductionDate time.Time
	PlannedDate    *time.Time

	Status      BatchStatus
	Ingredients []BatchIngredient
	TotalCost   decimal.Decimal
	CostPerUnit decimal.Decimal

	ProducedBy string
	Notes      string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}
