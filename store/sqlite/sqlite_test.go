package sqlite_test

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
	"github.com/formlab/production-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func utc(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sampleMaterial() inventory.Material {
	expiry := utc(2026, time.June, 30)
	return inventory.Material{
		ID:                   "mat-1",
		Name:                 "Glycerin",
		SKU:                  "GLY-001",
		Description:          "Vegetable glycerin",
		Category:             "humectant",
		Supplier:             "ChemSupply",
		Unit:                 inventory.UnitKilograms,
		UnitPrice:            dec("4.50"),
		CurrentStock:         dec("25.125"),
		MinStock:             dec("5"),
		MaxStock:             dec("100"),
		Location:             "A-12",
		ExpiryDate:           &expiry,
		BatchNumber:          "LOT-18",
		INCIName:             "Glycerin",
		CASNumber:            "56-81-5",
		SuitableForCosmetics: true,
		Certifications:       []string{"ECOCERT", "COSMOS"},
		Notes:                "99.5% purity",
		Status:               inventory.MaterialActive,
		CreatedAt:            utc(2025, time.August, 1),
		UpdatedAt:            utc(2025, time.August, 1),
	}
}

// =============================================================================
// MATERIAL ROUND TRIP
// =============================================================================

func TestMaterial_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	want := sampleMaterial()

	require.NoError(t, store.SaveMaterial(ctx, want))

	got, err := store.GetMaterial(ctx, "mat-1")
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Unit, got.Unit)
	assert.True(t, got.UnitPrice.Equal(want.UnitPrice))
	assert.True(t, got.CurrentStock.Equal(dec("25.125")), "decimal stock must survive exactly, got %s", got.CurrentStock)
	assert.Equal(t, want.Certifications, got.Certifications)
	require.NotNil(t, got.ExpiryDate)
	assert.True(t, got.ExpiryDate.Equal(*want.ExpiryDate))
	assert.True(t, got.SuitableForCosmetics)
	assert.False(t, got.SuitableForSupplements)
}

func TestMaterial_UpsertKeepsInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := sampleMaterial()
	second := sampleMaterial()
	second.ID, second.Name = "mat-2", "Shea Butter"
	require.NoError(t, store.SaveMaterial(ctx, first))
	require.NoError(t, store.SaveMaterial(ctx, second))

	first.CurrentStock = dec("10")
	require.NoError(t, store.SaveMaterial(ctx, first))

	list, err := store.ListMaterials(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "mat-1", list[0].ID, "update must not move the row")
	assert.True(t, list[0].CurrentStock.Equal(dec("10")))
}

func TestMaterial_NotFoundAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetMaterial(ctx, "mat-GONE")
	assert.ErrorIs(t, err, inventory.ErrMaterialNotFound)

	require.NoError(t, store.SaveMaterial(ctx, sampleMaterial()))
	require.NoError(t, store.DeleteMaterial(ctx, "mat-1"))
	_, err = store.GetMaterial(ctx, "mat-1")
	assert.ErrorIs(t, err, inventory.ErrMaterialNotFound)
}

// =============================================================================
// FORMULA ROUND TRIP
// =============================================================================

func TestFormula_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	temp := dec("40")
	want := catalog.Formula{
		ID:             "f-1",
		Name:           "Hydrating Aloe Gel",
		Version:        "1.2",
		Category:       "skincare",
		ClientID:       "c-1",
		ClientName:     "Verde Botanica",
		BatchSizeGrams: dec("1000"),
		Ingredients: []catalog.Ingredient{
			{ID: "i-1", MaterialID: "mat-1", MaterialName: "Glycerin", Phase: "A", Percentage: dec("5")},
			{ID: "i-2", MaterialID: "mat-2", MaterialName: "Aloe", Phase: "B", Percentage: dec("10")},
		},
		Steps: []catalog.ProductionStep{
			{ID: "s-1", StepNumber: 1, Phase: "A", Description: "Mix", Temperature: &temp, MixingTime: 10},
		},
		Phases:    []string{"A", "B"},
		Status:    catalog.FormulaApproved,
		CreatedAt: utc(2025, time.July, 1),
		UpdatedAt: utc(2025, time.July, 2),
	}
	want.RecomputeWeights()

	require.NoError(t, store.SaveFormula(ctx, want))

	got, err := store.GetFormula(ctx, "f-1")
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.True(t, got.BatchSizeGrams.Equal(dec("1000")))
	assert.True(t, got.TotalPercentage.Equal(dec("15")))
	require.Len(t, got.Ingredients, 2)
	assert.True(t, got.Ingredients[0].WeightGrams.Equal(dec("50")))
	require.Len(t, got.Steps, 1)
	require.NotNil(t, got.Steps[0].Temperature)
	assert.True(t, got.Steps[0].Temperature.Equal(dec("40")))
	assert.Equal(t, []string{"A", "B"}, got.Phases)
	assert.True(t, got.IsApproved())
}

func TestFormula_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetFormula(context.Background(), "f-GONE")
	assert.ErrorIs(t, err, catalog.ErrFormulaNotFound)
}

// =============================================================================
// CLIENT ROUND TRIP
// =============================================================================

func TestClient_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := catalog.Client{
		ID:        "c-1",
		Name:      "Verde Botanica",
		Company:   "Verde Botanica S.L.",
		Email:     "orders@verdebotanica.example",
		Phone:     "+34 600 000 000",
		CreatedAt: utc(2025, time.June, 1),
		UpdatedAt: utc(2025, time.June, 1),
	}
	require.NoError(t, store.SaveClient(ctx, want))

	got, err := store.GetClient(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Email, got.Email)

	_, err = store.GetClient(ctx, "c-GONE")
	assert.ErrorIs(t, err, catalog.ErrClientNotFound)
}

// =============================================================================
// BATCH ROUND TRIP
// =============================================================================

func sampleBatch() production.Batch {
	planned := utc(2025, time.September, 1)
	return production.Batch{
		ID:               "b-1",
		BatchNumber:      "P250828-0001",
		FormulaID:        "f-1",
		FormulaName:      "Hydrating Aloe Gel",
		FormulaVersion:   "1.2",
		ClientID:         "c-1",
		ClientName:       "Verde Botanica",
		UnitsToProduce:   100,
		VolumePerUnit:    dec("100"),
		TotalVolume:      dec("10000"),
		TotalWeightGrams: dec("10000"),
		ScaleFactor:      dec("10"),
		ProductionDate:   utc(2025, time.September, 1),
		PlannedDate:      &planned,
		Status:           production.StatusPlanned,
		Ingredients: []production.BatchIngredient{
			{ID: "bi-1", MaterialID: "mat-1", MaterialName: "Glycerin",
				RequiredGrams: dec("500"), UnitPrice: dec("20"), LineCost: dec("10"), Phase: "A"},
		},
		TotalCost:   dec("10"),
		CostPerUnit: dec("0.1"),
		ProducedBy:  "lab",
		CreatedAt:   utc(2025, time.August, 28),
		UpdatedAt:   utc(2025, time.August, 28),
	}
}

func TestBatch_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	want := sampleBatch()

	require.NoError(t, store.SaveBatch(ctx, want))

	got, err := store.GetBatch(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, want.BatchNumber, got.BatchNumber)
	assert.Equal(t, production.StatusPlanned, got.Status)
	assert.True(t, got.ScaleFactor.Equal(dec("10")))
	assert.True(t, got.TotalCost.Equal(dec("10")))
	assert.True(t, got.CostPerUnit.Equal(dec("0.1")))
	require.Len(t, got.Ingredients, 1)
	assert.True(t, got.Ingredients[0].RequiredGrams.Equal(dec("500")))
	assert.True(t, got.Ingredients[0].RequiredKilograms().Equal(dec("0.5")))
	require.NotNil(t, got.PlannedDate)
	assert.Nil(t, got.StartedAt)
	assert.Nil(t, got.CompletedAt)
}

func TestBatch_StatusUpdateSurvives(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	b := sampleBatch()
	require.NoError(t, store.SaveBatch(ctx, b))

	started := utc(2025, time.September, 1)
	b.Status = production.StatusInProgress
	b.StartedAt = &started
	require.NoError(t, store.SaveBatch(ctx, b))

	got, err := store.GetBatch(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, production.StatusInProgress, got.Status)
	require.NotNil(t, got.StartedAt)
	assert.True(t, got.StartedAt.Equal(started))
}

func TestBatch_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetBatch(context.Background(), "b-GONE")
	assert.ErrorIs(t, err, production.ErrBatchNotFound)
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

func TestWithTx_RollsBackOnError(t *testing.T) {
	// GIVEN: A material and a batch saved outside any transaction
	// WHEN: A transaction deducts stock, saves the batch, then fails
	// THEN: Both writes are rolled back

	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveMaterial(ctx, sampleMaterial()))
	require.NoError(t, store.SaveBatch(ctx, sampleBatch()))

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(tx production.Store) error {
		m, err := tx.GetMaterial(ctx, "mat-1")
		if err != nil {
			return err
		}
		m.CurrentStock = dec("0")
		if err := tx.SaveMaterial(ctx, *m); err != nil {
			return err
		}

		b, err := tx.GetBatch(ctx, "b-1")
		if err != nil {
			return err
		}
		b.Status = production.StatusInProgress
		if err := tx.SaveBatch(ctx, *b); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	m, err := store.GetMaterial(ctx, "mat-1")
	require.NoError(t, err)
	assert.True(t, m.CurrentStock.Equal(dec("25.125")), "stock write must be rolled back")

	b, err := store.GetBatch(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, production.StatusPlanned, b.Status, "batch write must be rolled back")
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveMaterial(ctx, sampleMaterial()))

	err := store.WithTx(ctx, func(tx production.Store) error {
		m, err := tx.GetMaterial(ctx, "mat-1")
		if err != nil {
			return err
		}
		m.CurrentStock = dec("20")
		return tx.SaveMaterial(ctx, *m)
	})
	require.NoError(t, err)

	m, err := store.GetMaterial(ctx, "mat-1")
	require.NoError(t, err)
	assert.True(t, m.CurrentStock.Equal(dec("20")))
}

func TestWithTx_NestedReusesTransaction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveMaterial(ctx, sampleMaterial()))

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(tx production.Store) error {
		inner, ok := tx.(production.TxStore)
		require.True(t, ok)
		if err := inner.WithTx(ctx, func(tx2 production.Store) error {
			m, err := tx2.GetMaterial(ctx, "mat-1")
			if err != nil {
				return err
			}
			m.CurrentStock = dec("1")
			return tx2.SaveMaterial(ctx, *m)
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	m, err := store.GetMaterial(ctx, "mat-1")
	require.NoError(t, err)
	assert.True(t, m.CurrentStock.Equal(dec("25.125")), "nested write rolls back with the outer tx")
}

// =============================================================================
// MANAGER OVER SQLITE - the lifecycle against the real store
// =============================================================================

func TestManager_StartProductionOverSQLite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	m := sampleMaterial()
	m.UnitPrice = dec("20")
	m.CurrentStock = dec("10")
	require.NoError(t, store.SaveMaterial(ctx, m))

	formula := catalog.Formula{
		ID:             "f-1",
		Name:           "Gel",
		Version:        "1.0",
		BatchSizeGrams: dec("1000"),
		Ingredients: []catalog.Ingredient{
			{ID: "i-1", MaterialID: "mat-1", MaterialName: "Glycerin", Percentage: dec("5")},
		},
		Status:    catalog.FormulaApproved,
		CreatedAt: utc(2025, time.July, 1),
		UpdatedAt: utc(2025, time.July, 1),
	}
	formula.RecomputeWeights()
	require.NoError(t, store.SaveFormula(ctx, formula))

	manager := production.NewManager(store, store, store)
	result, err := manager.CreateBatch(ctx, production.CreateBatchInput{
		FormulaID:      "f-1",
		UnitsToProduce: 100,
		VolumePerUnit:  dec("100"),
		ProductionDate: utc(2025, time.September, 1),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Start)
	assert.True(t, result.Start.Started)
	assert.Equal(t, production.StatusInProgress, result.Batch.Status)

	after, err := store.GetMaterial(ctx, "mat-1")
	require.NoError(t, err)
	assert.True(t, after.CurrentStock.Equal(dec("9.5")), "stock = %s", after.CurrentStock)
}

func TestManager_BatchNumbersSurviveRestart(t *testing.T) {
	// GIVEN: A batch persisted by one manager
	// WHEN: A fresh manager over the same database creates another batch
	//       on the same day, as after a server restart
	// THEN: The day's sequence continues; the batch_number UNIQUE
	//       constraint is never hit

	store := newTestStore(t)
	ctx := context.Background()

	m := sampleMaterial()
	m.CurrentStock = dec("100")
	require.NoError(t, store.SaveMaterial(ctx, m))

	formula := catalog.Formula{
		ID:             "f-1",
		Name:           "Gel",
		Version:        "1.0",
		BatchSizeGrams: dec("1000"),
		Ingredients: []catalog.Ingredient{
			{ID: "i-1", MaterialID: "mat-1", MaterialName: "Glycerin", Percentage: dec("5")},
		},
		Status:    catalog.FormulaApproved,
		CreatedAt: utc(2025, time.July, 1),
		UpdatedAt: utc(2025, time.July, 1),
	}
	formula.RecomputeWeights()
	require.NoError(t, store.SaveFormula(ctx, formula))

	clock := func() time.Time { return time.Date(2025, time.September, 1, 10, 0, 0, 0, time.UTC) }
	planned := utc(2025, time.September, 8)
	input := production.CreateBatchInput{
		FormulaID:      "f-1",
		UnitsToProduce: 10,
		VolumePerUnit:  dec("100"),
		ProductionDate: utc(2025, time.September, 8),
		PlannedDate:    &planned,
	}

	first := production.NewManager(store, store, store)
	first.Now = clock
	batch1, _, err := first.PlanBatch(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "P250901-0001", batch1.BatchNumber)

	second := production.NewManager(store, store, store)
	second.Now = clock
	batch2, _, err := second.PlanBatch(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "P250901-0002", batch2.BatchNumber)

	batches, err := store.ListBatches(ctx)
	require.NoError(t, err)
	assert.Len(t, batches, 2)
}
