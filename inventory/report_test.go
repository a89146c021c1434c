package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlab/production-engine/inventory"
)

func TestBuildStockReport_Classification(t *testing.T) {
	// GIVEN: Materials in every interesting state
	// WHEN: Building the report
	// THEN: Each lands in the right bucket; discontinued is skipped

	now := time.Date(2025, time.August, 28, 12, 0, 0, 0, time.UTC)
	expired := now.AddDate(0, 0, -1)
	soon := now.AddDate(0, 0, 10)
	far := now.AddDate(1, 0, 0)

	healthy := glycerin("100")
	healthy.ID, healthy.Name = "mat-ok", "Healthy"
	healthy.ExpiryDate = &far

	low := glycerin("2")
	low.ID, low.Name = "mat-low", "Low"

	old := glycerin("50")
	old.ID, old.Name = "mat-exp", "Expired"
	old.ExpiryDate = &expired

	closing := glycerin("50")
	closing.ID, closing.Name = "mat-soon", "Soon"
	closing.ExpiryDate = &soon

	gone := glycerin("0")
	gone.ID, gone.Name = "mat-disc", "Discontinued"
	gone.Status = inventory.MaterialDiscontinued

	ledger, _ := newLedgerWith(t, healthy, low, old, closing, gone)

	report, err := inventory.BuildStockReport(context.Background(), ledger, now, inventory.DefaultExpiryWindow)
	require.NoError(t, err)

	assert.Equal(t, 5, report.TotalCount)
	require.Len(t, report.LowStock, 1)
	assert.Equal(t, "mat-low", report.LowStock[0].ID)
	require.Len(t, report.Expired, 1)
	assert.Equal(t, "mat-exp", report.Expired[0].ID)
	require.Len(t, report.ExpiringSoon, 1)
	assert.Equal(t, "mat-soon", report.ExpiringSoon[0].ID)
}

func TestBuildStockReport_MaterialCanBeInTwoBuckets(t *testing.T) {
	now := time.Date(2025, time.August, 28, 12, 0, 0, 0, time.UTC)
	expired := now.AddDate(0, 0, -5)

	m := glycerin("1") // below MinStock of 5
	m.ExpiryDate = &expired

	ledger, _ := newLedgerWith(t, m)
	report, err := inventory.BuildStockReport(context.Background(), ledger, now, 0)
	require.NoError(t, err)

	assert.Len(t, report.LowStock, 1)
	assert.Len(t, report.Expired, 1)
	assert.Empty(t, report.ExpiringSoon, "expired is not also expiring-soon")
}
