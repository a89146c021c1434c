/*
csv.go - Bulk material import from CSV

PURPOSE:
  Lets the lab load its supplier price lists in one step instead of
  entering materials by hand. Each row is validated independently;
  valid rows are imported, invalid rows are reported with their line
  number and skipped.

FORMAT:
  Header row required, columns in any order are NOT supported - the
  template order is the contract. Certifications are pipe-separated
  inside a single cell. Dates are YYYY-MM-DD.

SEE ALSO:
  - CSVTemplate: the expected header row, exposed for download
*/
package inventory

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CSVHeader is the expected column order for material imports.
var CSVHeader = []string{
	"name", "sku", "description", "category", "supplier",
	"currentStock", "minStock", "maxStock", "unit", "unitPrice",
	"location", "expiryDate", "batchNumber", "inciName", "casNumber",
	"suitableForCosmetics", "suitableForSupplements",
	"certifications", "notes", "status",
}

// CSVTemplate returns the header row plus one example row, ready to be
// offered as a downloadable template.
func CSVTemplate() string {
	var b strings.Builder
	b.WriteString(strings.Join(CSVHeader, ","))
	b.WriteString("\n")
	b.WriteString(`Glycerin,GLY-001,Vegetable glycerin,humectant,ChemSupply,25,5,100,kg,4.50,A-12,2026-06-30,LOT-2024-18,Glycerin,56-81-5,true,true,ECOCERT|COSMOS,99.5% purity,active`)
	b.WriteString("\n")
	return b.String()
}

// RowError reports a rejected import row. Line numbers are 1-based and
// include the header, matching what the user sees in a spreadsheet.
type RowError struct {
	Line    int
	Message string
}

func (e RowError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Message) }

// ImportResult summarizes a CSV import run.
type ImportResult struct {
	Imported int
	Skipped  []RowError
}

// ImportCSV reads materials from r and saves the valid ones through the
// store. Row failures do not abort the import; they are collected in the
// result. A malformed header or unreadable stream fails the whole run.
func ImportCSV(ctx context.Context, store Store, r io.Reader, now time.Time) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(CSVHeader)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, col := range CSVHeader {
		if i >= len(header) || !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return nil, fmt.Errorf("unexpected CSV header: want column %d to be %q", i+1, col)
		}
	}

	result := &ImportResult{}
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Message: err.Error()})
			continue
		}

		m, err := materialFromRecord(record, now)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Message: err.Error()})
			continue
		}
		if err := store.SaveMaterial(ctx, *m); err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Message: err.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}

func materialFromRecord(rec []string, now time.Time) (*Material, error) {
	get := func(i int) string { return strings.TrimSpace(rec[i]) }

	name := get(0)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "required"}
	}
	sku := get(1)
	if sku == "" {
		return nil, &ValidationError{Field: "sku", Message: "required"}
	}

	currentStock, err := parseNonNegative("currentStock", get(5))
	if err != nil {
		return nil, err
	}
	minStock, err := parseNonNegative("minStock", get(6))
	if err != nil {
		return nil, err
	}
	maxStock, err := parseNonNegative("maxStock", get(7))
	if err != nil {
		return nil, err
	}
	unit, err := ParseUnit(get(8))
	if err != nil {
		return nil, err
	}
	unitPrice, err := parseNonNegative("unitPrice", get(9))
	if err != nil {
		return nil, err
	}

	var expiry *time.Time
	if s := get(11); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, &ValidationError{Field: "expiryDate", Message: "want YYYY-MM-DD, got " + s}
		}
		expiry = &t
	}

	status := MaterialActive
	if s := get(19); s != "" {
		status, err = ParseMaterialStatus(s)
		if err != nil {
			return nil, err
		}
	}

	var certs []string
	for _, c := range strings.Split(get(17), "|") {
		if c = strings.TrimSpace(c); c != "" {
			certs = append(certs, c)
		}
	}

	return &Material{
		ID:                     uuid.NewString(),
		Name:                   name,
		SKU:                    sku,
		Description:            get(2),
		Category:               get(3),
		Supplier:               get(4),
		CurrentStock:           currentStock,
		MinStock:               minStock,
		MaxStock:               maxStock,
		Unit:                   unit,
		UnitPrice:              unitPrice,
		Location:               get(10),
		ExpiryDate:             expiry,
		BatchNumber:            get(12),
		INCIName:               get(13),
		CASNumber:              get(14),
		SuitableForCosmetics:   strings.EqualFold(get(15), "true"),
		SuitableForSupplements: strings.EqualFold(get(16), "true"),
		Certifications:         certs,
		Notes:                  get(18),
		Status:                 status,
		CreatedAt:              now,
		UpdatedAt:              now,
	}, nil
}

func parseNonNegative(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Message: "not a number: " + s}
	}
	if d.IsNegative() {
		return decimal.Zero, &ValidationError{Field: field, Message: "must not be negative"}
	}
	return d, nil
}
