package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlab/production-engine/inventory"
	"github.com/formlab/production-engine/production"
	"github.com/formlab/production-engine/store/memory"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func material(id string, stock decimal.Decimal) inventory.Material {
	return inventory.Material{
		ID:           id,
		Name:         "Material " + id,
		SKU:          "SKU-" + id,
		Unit:         inventory.UnitKilograms,
		CurrentStock: stock,
		Status:       inventory.MaterialActive,
	}
}

func TestMemory_ListPreservesInsertionOrder(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.SaveMaterial(ctx, material(id, dec("1"))))
	}
	// Updating must not move the row.
	require.NoError(t, store.SaveMaterial(ctx, material("c", dec("9"))))

	list, err := store.ListMaterials(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
	assert.Equal(t, "b", list[2].ID)
	assert.True(t, list[0].CurrentStock.Equal(dec("9")))
}

func TestMemory_ReadsAreCopies(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	m := material("m-1", dec("5"))
	m.Certifications = []string{"ECOCERT"}
	require.NoError(t, store.SaveMaterial(ctx, m))

	got, err := store.GetMaterial(ctx, "m-1")
	require.NoError(t, err)
	got.CurrentStock = dec("0")
	got.Certifications[0] = "MUTATED"

	again, err := store.GetMaterial(ctx, "m-1")
	require.NoError(t, err)
	assert.True(t, again.CurrentStock.Equal(dec("5")))
	assert.Equal(t, []string{"ECOCERT"}, again.Certifications)
}

func TestMemory_WithTxRollsBackMaterialsAndBatches(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.SaveMaterial(ctx, material("m-1", dec("10"))))
	require.NoError(t, store.SaveBatch(ctx, production.Batch{ID: "b-1", Status: production.StatusPlanned}))

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(tx production.Store) error {
		m, err := tx.GetMaterial(ctx, "m-1")
		if err != nil {
			return err
		}
		m.CurrentStock = dec("0")
		if err := tx.SaveMaterial(ctx, *m); err != nil {
			return err
		}
		if err := tx.SaveBatch(ctx, production.Batch{ID: "b-1", Status: production.StatusInProgress}); err != nil {
			return err
		}
		if err := tx.SaveBatch(ctx, production.Batch{ID: "b-new", Status: production.StatusPlanned}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	m, err := store.GetMaterial(ctx, "m-1")
	require.NoError(t, err)
	assert.True(t, m.CurrentStock.Equal(dec("10")))

	b, err := store.GetBatch(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, production.StatusPlanned, b.Status)

	_, err = store.GetBatch(ctx, "b-new")
	assert.ErrorIs(t, err, production.ErrBatchNotFound, "insert made inside a failed tx must vanish")
}

func TestMemory_WithTxCommitsOnSuccess(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.SaveMaterial(ctx, material("m-1", dec("10"))))

	err := store.WithTx(ctx, func(tx production.Store) error {
		m, err := tx.GetMaterial(ctx, "m-1")
		if err != nil {
			return err
		}
		m.CurrentStock = dec("7")
		return tx.SaveMaterial(ctx, *m)
	})
	require.NoError(t, err)

	m, err := store.GetMaterial(ctx, "m-1")
	require.NoError(t, err)
	assert.True(t, m.CurrentStock.Equal(dec("7")))
}
