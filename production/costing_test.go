package production_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlab/production-engine/catalog"
	"github.com/formlab/production-engine/inventory"
	"github.com/formlab/production-engine/production"
	"github.com/formlab/production-engine/store/memory"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// saveMaterial stores a material priced per kg with the given stock level.
func saveMaterial(t *testing.T, store inventory.Store, id, name string, pricePerKg, stockKg decimal.Decimal) inventory.Material {
	t.Helper()
	m := inventory.Material{
		ID:           id,
		Name:         name,
		SKU:          "SKU-" + id,
		Unit:         inventory.UnitKilograms,
		UnitPrice:    pricePerKg,
		CurrentStock: stockKg,
		Status:       inventory.MaterialActive,
	}
	require.NoError(t, store.SaveMaterial(context.Background(), m))
	return m
}

// approvedFormula builds a 1000 g reference formula with one ingredient
// line per (materialID, percentage) pair.
func approvedFormula(id string, batchSizeGrams decimal.Decimal, lines map[string]decimal.Decimal) catalog.Formula {
	f := catalog.Formula{
		ID:             id,
		Name:           "Test Formula",
		Version:        "1.0",
		BatchSizeGrams: batchSizeGrams,
		Status:         catalog.FormulaApproved,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	for materialID, pct := range lines {
		f.Ingredients = append(f.Ingredients, catalog.Ingredient{
			ID:           "ing-" + materialID,
			MaterialID:   materialID,
			MaterialName: "Material " + materialID,
			Percentage:   pct,
		})
	}
	f.RecomputeWeights()
	return f
}

// =============================================================================
// SCALE FACTOR
// =============================================================================

func TestComputeScale_ReferenceVolumeEqualsBatchSize(t *testing.T) {
	// GIVEN: A 1000 g reference formula
	// WHEN: Producing 10 units of 100 ml
	// THEN: Total volume 1000 ml gives scale 1.0

	scale, err := production.ComputeScale(dec("1000"), 10, dec("100"))
	require.NoError(t, err)
	assert.True(t, scale.Equal(dec("1")), "scale = %s", scale)
}

func TestComputeScale_TenfoldOutput(t *testing.T) {
	scale, err := production.ComputeScale(dec("1000"), 100, dec("100"))
	require.NoError(t, err)
	assert.True(t, scale.Equal(dec("10")), "scale = %s", scale)
}

func TestComputeScale_FractionalScale(t *testing.T) {
	// 3 x 50 ml against a 1000 g reference: scale 0.15, exact in decimal.
	scale, err := production.ComputeScale(dec("1000"), 3, dec("50"))
	require.NoError(t, err)
	assert.True(t, scale.Equal(dec("0.15")), "scale = %s", scale)
}

func TestComputeScale_RejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name      string
		batchSize decimal.Decimal
		units     int
		volume    decimal.Decimal
		want      error
	}{
		{"zero units", dec("1000"), 0, dec("100"), production.ErrInvalidInput},
		{"negative units", dec("1000"), -5, dec("100"), production.ErrInvalidInput},
		{"zero volume", dec("1000"), 10, dec("0"), production.ErrInvalidInput},
		{"negative volume", dec("1000"), 10, dec("-1"), production.ErrInvalidInput},
		{"zero batch size", dec("0"), 10, dec("100"), production.ErrCorruptFormula},
		{"negative batch size", dec("-1000"), 10, dec("100"), production.ErrCorruptFormula},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := production.ComputeScale(tc.batchSize, tc.units, tc.volume)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// =============================================================================
// INGREDIENT PRICING
// =============================================================================

func TestCost_SingleIngredientAtReferenceScale(t *testing.T) {
	// GIVEN: A 1000 g formula with one 5% ingredient, material at 20/kg
	// WHEN: Costing at scale 1.0
	// THEN: 50 g = 0.05 kg, line cost 1.00

	store := memory.New()
	saveMaterial(t, store, "mat-1", "Glycerin", dec("20"), dec("10"))
	formula := approvedFormula("f-1", dec("1000"), map[string]decimal.Decimal{"mat-1": dec("5")})

	costing, err := production.Cost(context.Background(), &formula, dec("1"), inventory.NewLedger(store))
	require.NoError(t, err)

	require.Len(t, costing.Ingredients, 1)
	line := costing.Ingredients[0]
	assert.True(t, line.RequiredGrams.Equal(dec("50")), "requiredGrams = %s", line.RequiredGrams)
	assert.True(t, line.RequiredKilograms().Equal(dec("0.05")), "requiredKg = %s", line.RequiredKilograms())
	assert.True(t, line.LineCost.Equal(dec("1")), "lineCost = %s", line.LineCost)
	assert.True(t, costing.TotalCost.Equal(dec("1")), "totalCost = %s", costing.TotalCost)
	assert.Empty(t, costing.Warnings)
}

func TestCost_ScalesLinearly(t *testing.T) {
	// Same formula at scale 10: 500 g = 0.5 kg at 20/kg = 10.00.
	store := memory.New()
	saveMaterial(t, store, "mat-1", "Glycerin", dec("20"), dec("10"))
	formula := approvedFormula("f-1", dec("1000"), map[string]decimal.Decimal{"mat-1": dec("5")})

	costing, err := production.Cost(context.Background(), &formula, dec("10"), inventory.NewLedger(store))
	require.NoError(t, err)

	require.Len(t, costing.Ingredients, 1)
	assert.True(t, costing.Ingredients[0].RequiredGrams.Equal(dec("500")))
	assert.True(t, costing.TotalCost.Equal(dec("10")), "totalCost = %s", costing.TotalCost)
}

func TestCost_SumsMultipleLines(t *testing.T) {
	store := memory.New()
	saveMaterial(t, store, "mat-1", "Glycerin", dec("20"), dec("10"))
	saveMaterial(t, store, "mat-2", "Aloe", dec("40"), dec("10"))
	formula := approvedFormula("f-1", dec("1000"), map[string]decimal.Decimal{
		"mat-1": dec("5"),  // 50 g -> 0.05 kg * 20 = 1.00
		"mat-2": dec("10"), // 100 g -> 0.1 kg * 40 = 4.00
	})

	costing, err := production.Cost(context.Background(), &formula, dec("1"), inventory.NewLedger(store))
	require.NoError(t, err)

	require.Len(t, costing.Ingredients, 2)
	assert.True(t, costing.TotalCost.Equal(dec("5")), "totalCost = %s", costing.TotalCost)
}

func TestCost_MissingMaterialFailsWhole(t *testing.T) {
	// GIVEN: A formula referencing a material that is not in inventory
	// WHEN: Costing
	// THEN: The whole costing fails, nothing is silently skipped

	store := memory.New()
	saveMaterial(t, store, "mat-1", "Glycerin", dec("20"), dec("10"))
	formula := approvedFormula("f-1", dec("1000"), map[string]decimal.Decimal{
		"mat-1":    dec("5"),
		"mat-GONE": dec("5"),
	})

	_, err := production.Cost(context.Background(), &formula, dec("1"), inventory.NewLedger(store))
	assert.ErrorIs(t, err, inventory.ErrMaterialNotFound)
}

func TestCost_ShortageIsAdvisory(t *testing.T) {
	// GIVEN: Stock covers only part of the requirement
	// WHEN: Costing
	// THEN: Costing succeeds, the shortage shows up as a warning

	store := memory.New()
	saveMaterial(t, store, "mat-1", "Glycerin", dec("20"), dec("0.3"))
	formula := approvedFormula("f-1", dec("1000"), map[string]decimal.Decimal{"mat-1": dec("5")})

	costing, err := production.Cost(context.Background(), &formula, dec("10"), inventory.NewLedger(store))
	require.NoError(t, err)

	require.Len(t, costing.Warnings, 1)
	w := costing.Warnings[0]
	assert.Equal(t, "mat-1", w.MaterialID)
	assert.True(t, w.RequiredKg.Equal(dec("0.5")))
	assert.True(t, w.AvailableKg.Equal(dec("0.3")))
	assert.True(t, w.Shortfall().Equal(dec("0.2")))
}

func TestCost_DoesNotTouchStock(t *testing.T) {
	store := memory.New()
	saveMaterial(t, store, "mat-1", "Glycerin", dec("20"), dec("10"))
	formula := approvedFormula("f-1", dec("1000"), map[string]decimal.Decimal{"mat-1": dec("5")})

	_, err := production.Cost(context.Background(), &formula, dec("10"), inventory.NewLedger(store))
	require.NoError(t, err)

	m, err := store.GetMaterial(context.Background(), "mat-1")
	require.NoError(t, err)
	assert.True(t, m.CurrentStock.Equal(dec("10")), "stock changed to %s", m.CurrentStock)
}

// Guard against accidental sentinel aliasing across packages.
func TestCost_NotFoundMatchesReexportedSentinel(t *testing.T) {
	store := memory.New()
	formula := approvedFormula("f-1", dec("1000"), map[string]decimal.Decimal{"mat-GONE": dec("5")})

	_, err := production.Cost(context.Background(), &formula, dec("1"), inventory.NewLedger(store))
	assert.True(t, errors.Is(err, production.ErrMaterialNotFound))
	assert.True(t, production.IsNotFound(err))
}
