package inventory

import (
	"context"
	"time"
)

// =============================================================================
// STOCK REPORT - Low-stock and expiry overview
// =============================================================================

// StockReport summarizes materials that need attention: at or below their
// reorder level, already expired, or expiring soon.
type StockReport struct {
	GeneratedAt  time.Time
	TotalCount   int
	LowStock     []Material
	Expired      []Material
	ExpiringSoon []Material
}

// DefaultExpiryWindow is how far ahead ExpiringSoon looks.
const DefaultExpiryWindow = 30 * 24 * time.Hour

// BuildStockReport scans the ledger and classifies materials. A material
// can appear in more than one bucket (low stock and expired, for example).
// Discontinued materials are skipped.
func BuildStockReport(ctx context.Context, ledger Ledger, now time.Time, expiryWindow time.Duration) (*StockReport, error) {
	if expiryWindow <= 0 {
		expiryWindow = DefaultExpiryWindow
	}

	materials, err := ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &StockReport{GeneratedAt: now, TotalCount: len(materials)}
	for _, m := range materials {
		if m.Status == MaterialDiscontinued {
			continue
		}
		if m.IsLowStock() {
			report.LowStock = append(report.LowStock, m)
		}
		if m.IsExpired(now) {
			report.Expired = append(report.Expired, m)
		} else if m.ExpiresWithin(now, expiryWindow) {
			report.ExpiringSoon = append(report.ExpiringSoon, m)
		}
	}
	return report, nil
}
