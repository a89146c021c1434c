// Package inventory manages raw materials: identity, pricing, and the
// stock ledger that production draws from. Stock is mutated exclusively
// through Ledger.AdjustStock; nothing else in the system writes to
// CurrentStock.
package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// UNITS
// =============================================================================

// Unit is a material's declared unit of measure. Stock, min/max levels
// and unit price are all denominated in this unit. Mass-based costing
// assumes kilograms.
type Unit string

const (
	UnitKilograms   Unit = "kg"
	UnitGrams       Unit = "g"
	UnitLiters      Unit = "l"
	UnitMilliliters Unit = "ml"
	UnitPieces      Unit = "pcs"
)

// ParseUnit validates a unit string at the boundary.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitKilograms, UnitGrams, UnitLiters, UnitMilliliters, UnitPieces:
		return Unit(s), nil
	}
	return "", &ValidationError{Field: "unit", Message: "unknown unit: " + s}
}

// GramsPerKilogram converts between the formula's gram-denominated
// ingredient weights and kilogram-denominated stock.
var GramsPerKilogram = decimal.NewFromInt(1000)

// =============================================================================
// MATERIAL STATUS
// =============================================================================

type MaterialStatus string

const (
	MaterialActive       MaterialStatus = "active"
	MaterialDiscontinued MaterialStatus = "discontinued"
	MaterialPending      MaterialStatus = "pending"
)

func ParseMaterialStatus(s string) (MaterialStatus, error) {
	switch MaterialStatus(s) {
	case MaterialActive, MaterialDiscontinued, MaterialPending:
		return MaterialStatus(s), nil
	}
	return "", &ValidationError{Field: "status", Message: "unknown material status: " + s}
}

// =============================================================================
// MATERIAL
// =============================================================================

// Material is a raw material held in stock.
//
// INVARIANT: CurrentStock >= 0 at all times. The only code path allowed
// to change CurrentStock is Ledger.AdjustStock, which enforces this.
type Material struct {
	ID          string
	Name        string
	SKU         string
	Description string
	Category    string
	Supplier    string

	Unit         Unit
	UnitPrice    decimal.Decimal // currency per Unit
	CurrentStock decimal.Decimal // in Unit
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal

	Location    string
	ExpiryDate  *time.Time
	BatchNumber string
	INCIName    string
	CASNumber   string

	SuitableForCosmetics   bool
	SuitableForSupplements bool

	Certifications []string
	Notes          string
	Status         MaterialStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLowStock reports whether stock has fallen to or below the reorder level.
func (m *Material) IsLowStock() bool {
	return m.CurrentStock.LessThanOrEqual(m.MinStock)
}

// IsExpired reports whether the material's expiry date has passed as of now.
func (m *Material) IsExpired(now time.Time) bool {
	return m.ExpiryDate != nil && m.ExpiryDate.Before(now)
}

// ExpiresWithin reports whether the material expires inside the given window.
func (m *Material) ExpiresWithin(now time.Time, window time.Duration) bool {
	if m.ExpiryDate == nil {
		return false
	}
	return !m.ExpiryDate.Before(now) && m.ExpiryDate.Before(now.Add(window))
}
