package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlab/production-engine/catalog"
	"github.com/formlab/production-engine/store/memory"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRecomputeWeights(t *testing.T) {
	f := catalog.Formula{
		BatchSizeGrams: dec("1000"),
		Ingredients: []catalog.Ingredient{
			{ID: "i-1", Percentage: dec("5")},
			{ID: "i-2", Percentage: dec("2.5")},
		},
	}
	f.RecomputeWeights()

	assert.True(t, f.Ingredients[0].WeightGrams.Equal(dec("50")))
	assert.True(t, f.Ingredients[1].WeightGrams.Equal(dec("25")))
	assert.True(t, f.TotalPercentage.Equal(dec("7.5")))
}

func TestListApprovedFormulas(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	for id, status := range map[string]catalog.FormulaStatus{
		"f-draft":    catalog.FormulaDraft,
		"f-approved": catalog.FormulaApproved,
		"f-archived": catalog.FormulaArchived,
	} {
		require.NoError(t, store.SaveFormula(ctx, catalog.Formula{
			ID: id, Name: id, Version: "1.0",
			BatchSizeGrams: dec("1000"), Status: status,
		}))
	}

	approved, err := catalog.ListApprovedFormulas(ctx, store)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "f-approved", approved[0].ID)
}

func TestParseFormulaStatus(t *testing.T) {
	status, err := catalog.ParseFormulaStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, catalog.FormulaApproved, status)

	_, err = catalog.ParseFormulaStatus("shipped")
	assert.Error(t, err)
}
