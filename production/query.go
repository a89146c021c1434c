/*
query.go - In-memory filtering, search, and sorting over batches

PURPOSE:
  Pure presentation-layer queries. Text search matches batch number,
  formula name, or client name (case-insensitive substring). Filters
  narrow by status/formula/client sets and an inclusive production-date
  range. Sorting is stable: equal keys keep their input order.
*/
package production

import (
	"sort"
	"strings"
	"time"
)

// =============================================================================
// QUERY
// =============================================================================

type SortField string

const (
	SortByBatchNumber    SortField = "batchNumber"
	SortByFormulaName    SortField = "formulaName"
	SortByProductionDate SortField = "productionDate"
	SortByStatus         SortField = "status"
	SortByTotalCost      SortField = "totalCost"
)

func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case SortByBatchNumber, SortByFormulaName, SortByProductionDate, SortByStatus, SortByTotalCost:
		return SortField(s), nil
	}
	return "", &ValidationError{Field: "sort", Message: "unknown sort field: " + s}
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Query describes a filtered, sorted view of the batch collection.
// Zero-value fields mean "no constraint".
type Query struct {
	Search     string
	Status     []BatchStatus
	FormulaIDs []string
	ClientIDs  []string
	From       *time.Time // inclusive, on ProductionDate
	To         *time.Time // inclusive

	SortField SortField // default: productionDate
	SortDir   SortDirection
}

// Apply filters and sorts a copy of the input. The input slice is never
// modified.
func (q Query) Apply(batches []Batch) []Batch {
	result := make([]Batch, 0, len(batches))
	for _, b := range batches {
		if q.matches(&b) {
			result = append(result, b)
		}
	}

	field := q.SortField
	if field == "" {
		field = SortByProductionDate
	}
	desc := q.SortDir == SortDesc

	sort.SliceStable(result, func(i, j int) bool {
		a, b := &result[i], &result[j]
		if desc {
			a, b = b, a
		}
		return lessBy(field, a, b)
	})
	return result
}

func (q Query) matches(b *Batch) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(b.BatchNumber), needle) &&
			!strings.Contains(strings.ToLower(b.FormulaName), needle) &&
			!strings.Contains(strings.ToLower(b.ClientName), needle) {
			return false
		}
	}
	if len(q.Status) > 0 && !containsStatus(q.Status, b.Status) {
		return false
	}
	if len(q.FormulaIDs) > 0 && !containsString(q.FormulaIDs, b.FormulaID) {
		return false
	}
	if len(q.ClientIDs) > 0 && !containsString(q.ClientIDs, b.ClientID) {
		return false
	}
	if q.From != nil && b.ProductionDate.Before(*q.From) {
		return false
	}
	if q.To != nil && b.ProductionDate.After(*q.To) {
		return false
	}
	return true
}

func lessBy(field SortField, a, b *Batch) bool {
	switch field {
	case SortByBatchNumber:
		return strings.ToLower(a.BatchNumber) < strings.ToLower(b.BatchNumber)
	case SortByFormulaName:
		return strings.ToLower(a.FormulaName) < strings.ToLower(b.FormulaName)
	case SortByStatus:
		return strings.ToLower(string(a.Status)) < strings.ToLower(string(b.Status))
	case SortByTotalCost:
		return a.TotalCost.LessThan(b.TotalCost)
	default: // SortByProductionDate
		return a.ProductionDate.UnixNano() < b.ProductionDate.UnixNano()
	}
}

func containsStatus(set []BatchStatus, s BatchStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
