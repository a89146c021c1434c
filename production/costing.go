/*
costing.go - Scale factor computation and ingredient pricing

PURPOSE:
  Answers "what will this batch consume and what will it cost?" before
  anything is committed. Pure with respect to the ledger: costing reads
  stock, never writes it.

THE MATH:
  totalVolume   = unitsToProduce * volumePerUnit          (ml)
  scaleFactor   = totalVolume / formula.batchSize
  requiredGrams = ingredient.weightGrams * scaleFactor
  requiredKg    = requiredGrams / 1000                    (stock unit)
  lineCost      = requiredKg * material.unitPrice
  totalCost     = sum of line costs
  costPerUnit   = totalCost / unitsToProduce

  All of it in decimal. No rounding here - display rounding is the
  caller's concern.

MISSING MATERIALS:
  An ingredient whose material id does not resolve fails the whole
  costing with ErrMaterialNotFound. Silently under-costing a batch is
  worse than refusing to cost it.

SEE ALSO:
  - manager.go: calls Cost at batch creation
*/
package production

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/formlab/production-engine/catalog"
	"github.com/formlab/production-engine/inventory"
)

// =============================================================================
// SCALE FACTOR
// =============================================================================

// ComputeScale derives the batch scale factor from the requested output.
//
// Constraints: unitsToProduce >= 1, volumePerUnit > 0. A non-positive
// formula batch size is a data-integrity fault (ErrCorruptFormula), not
// a user error.
func ComputeScale(batchSizeGrams decimal.Decimal, unitsToProduce int, volumePerUnit decimal.Decimal) (decimal.Decimal, error) {
	if unitsToProduce < 1 {
		return decimal.Zero, &ValidationError{Field: "unitsToProduce", Message: "must be at least 1"}
	}
	if !volumePerUnit.IsPositive() {
		return decimal.Zero, &ValidationError{Field: "volumePerUnit", Message: "must be positive"}
	}
	if !batchSizeGrams.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: got %s", ErrCorruptFormula, batchSizeGrams)
	}

	totalVolume := decimal.NewFromInt(int64(unitsToProduce)).Mul(volumePerUnit)
	return totalVolume.Div(batchSizeGrams), nil
}

// =============================================================================
// INGREDIENT PRICING
// =============================================================================

// Costing is the priced breakdown of a prospective batch.
type Costing struct {
	Ingredients []BatchIngredient
	TotalCost   decimal.Decimal
	Warnings    []StockWarning
}

// Cost prices every formula ingredient at the given scale against the
// current ledger state.
//
// GUARANTEES:
//   - Read-only: the ledger is never mutated.
//   - Complete: a missing material fails with ErrMaterialNotFound
//     rather than being skipped.
//   - Warnings are advisory: a shortage shows up in Warnings but does
//     not fail the costing.
func Cost(ctx context.Context, formula *catalog.Formula, scale decimal.Decimal, ledger inventory.Ledger) (*Costing, error) {
	costing := &Costing{TotalCost: decimal.Zero}

	for _, ing := range formula.Ingredients {
		material, err := ledger.Get(ctx, ing.MaterialID)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q (%s): %w", ing.MaterialName, ing.MaterialID, err)
		}

		requiredGrams := ing.WeightGrams.Mul(scale)
		line := BatchIngredient{
			ID:            uuid.NewString(),
			MaterialID:    material.ID,
			MaterialName:  material.Name,
			MaterialSKU:   material.SKU,
			RequiredGrams: requiredGrams,
			UnitPrice:     material.UnitPrice,
			LineCost:      requiredGrams.Div(inventory.GramsPerKilogram).Mul(material.UnitPrice),
			Phase:         ing.Phase,
			Notes:         ing.Notes,
		}
		costing.Ingredients = append(costing.Ingredients, line)
		costing.TotalCost = costing.TotalCost.Add(line.LineCost)

		if requiredKg := line.RequiredKilograms(); requiredKg.GreaterThan(material.CurrentStock) {
			costing.Warnings = append(costing.Warnings, StockWarning{
				MaterialID:   material.ID,
				MaterialName: material.Name,
				RequiredKg:   requiredKg,
				AvailableKg:  material.CurrentStock,
			})
		}
	}

	return costing, nil
}
