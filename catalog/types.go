// Package catalog holds the formula definitions and the client directory.
// Both are reference data from production's perspective: production reads
// formulas and clients but never writes them.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// FORMULA STATUS
// =============================================================================

// FormulaStatus is a formula's position in the development lifecycle.
// Only approved formulas are eligible for production.
type FormulaStatus string

const (
	FormulaDraft    FormulaStatus = "draft"
	FormulaTesting  FormulaStatus = "testing"
	FormulaApproved FormulaStatus = "approved"
	FormulaArchived FormulaStatus = "archived"
)

func ParseFormulaStatus(s string) (FormulaStatus, error) {
	switch FormulaStatus(s) {
	case FormulaDraft, FormulaTesting, FormulaApproved, FormulaArchived:
		return FormulaStatus(s), nil
	}
	return "", &ValidationError{Field: "status", Message: "unknown formula status: " + s}
}

// =============================================================================
// FORMULA
// =============================================================================

// Ingredient is one line of a formula: a material reference with its
// weight fraction. WeightGrams is precomputed at formula-edit time as
// Percentage * BatchSizeGrams / 100 and is what production scales from.
type Ingredient struct {
	ID           string
	MaterialID   string
	MaterialName string
	MaterialSKU  string
	Phase        string // A, B, C... grouping for the manufacturing step
	Percentage   decimal.Decimal
	WeightGrams  decimal.Decimal
	Notes        string
}

// ProductionStep is one instruction of the manufacturing procedure.
type ProductionStep struct {
	ID          string
	StepNumber  int
	Phase       string
	Description string
	Temperature *decimal.Decimal // celsius
	MixingTime  int              // minutes
	MixingSpeed string
	Equipment   string
	Notes       string
}

// Formula is a recipe: ingredient percentages by weight against a
// reference batch size.
//
// Version is an opaque label, not semantically ordered. Batches snapshot
// name and version at creation; editing a formula never changes batches
// already produced from it.
type Formula struct {
	ID          string
	Name        string
	Version     string
	Description string
	Category    string
	ClientID    string // optional
	ClientName  string

	BatchSizeGrams  decimal.Decimal // the reference scale
	TotalPercentage decimal.Decimal
	Ingredients     []Ingredient
	Steps           []ProductionStep
	Phases          []string

	Status      FormulaStatus
	DevelopedBy string
	Notes       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsApproved reports production eligibility.
func (f *Formula) IsApproved() bool { return f.Status == FormulaApproved }

// RecomputeWeights refreshes every ingredient's WeightGrams and the
// formula's TotalPercentage from the percentages and batch size. Called
// by the formula editing flow, never by production.
func (f *Formula) RecomputeWeights() {
	total := decimal.Zero
	hundred := decimal.NewFromInt(100)
	for i := range f.Ingredients {
		ing := &f.Ingredients[i]
		ing.WeightGrams = ing.Percentage.Mul(f.BatchSizeGrams).Div(hundred)
		total = total.Add(ing.Percentage)
	}
	f.TotalPercentage = total
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is reference data attached to batches for reporting.
type Client struct {
	ID        string
	Name      string
	Company   string
	Email     string
	Phone     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
