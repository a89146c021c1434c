/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the domain model
  from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

REPRESENTATION:
  Decimals serialize as quoted strings (shopspring default) so the
  frontend never touches binary floats. Dates are YYYY-MM-DD where the
  domain cares about days, RFC 3339 for timestamps.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/formlab/production-engine/catalog"
	"github.com/formlab/production-engine/inventory"
	"github.com/formlab/production-engine/production"
)

const dateLayout = "2006-01-02"

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// MATERIALS
// =============================================================================

type MaterialDTO struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	SKU                    string          `json:"sku"`
	Description            string          `json:"description,omitempty"`
	Category               string          `json:"category,omitempty"`
	Supplier               string          `json:"supplier,omitempty"`
	Unit                   string          `json:"unit"`
	UnitPrice              decimal.Decimal `json:"unitPrice"`
	CurrentStock           decimal.Decimal `json:"currentStock"`
	MinStock               decimal.Decimal `json:"minStock"`
	MaxStock               decimal.Decimal `json:"maxStock"`
	Location               string          `json:"location,omitempty"`
	ExpiryDate             *string         `json:"expiryDate,omitempty"`
	BatchNumber            string          `json:"batchNumber,omitempty"`
	INCIName               string          `json:"inciName,omitempty"`
	CASNumber              string          `json:"casNumber,omitempty"`
	SuitableForCosmetics   bool            `json:"suitableForCosmetics"`
	SuitableForSupplements bool            `json:"suitableForSupplements"`
	Certifications         []string        `json:"certifications,omitempty"`
	Notes                  string          `json:"notes,omitempty"`
	Status                 string          `json:"status"`
	LowStock               bool            `json:"lowStock"`
	CreatedAt              string          `json:"createdAt"`
	UpdatedAt              string          `json:"updatedAt"`
}

type MaterialRequest struct {
	Name                   string          `json:"name"`
	SKU                    string          `json:"sku"`
	Description            string          `json:"description"`
	Category               string          `json:"category"`
	Supplier               string          `json:"supplier"`
	Unit                   string          `json:"unit"`
	UnitPrice              decimal.Decimal `json:"unitPrice"`
	CurrentStock           decimal.Decimal `json:"currentStock"`
	MinStock               decimal.Decimal `json:"minStock"`
	MaxStock               decimal.Decimal `json:"maxStock"`
	Location               string          `json:"location"`
	ExpiryDate             *string         `json:"expiryDate"`
	BatchNumber            string          `json:"batchNumber"`
	INCIName               string          `json:"inciName"`
	CASNumber              string          `json:"casNumber"`
	SuitableForCosmetics   bool            `json:"suitableForCosmetics"`
	SuitableForSupplements bool            `json:"suitableForSupplements"`
	Certifications         []string        `json:"certifications"`
	Notes                  string          `json:"notes"`
	Status                 string          `json:"status"`
}

type AdjustStockRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

type ImportResultDTO struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped,omitempty"`
}

type StockReportDTO struct {
	GeneratedAt  string        `json:"generatedAt"`
	TotalCount   int           `json:"totalCount"`
	LowStock     []MaterialDTO `json:"lowStock"`
	Expired      []MaterialDTO `json:"expired"`
	ExpiringSoon []MaterialDTO `json:"expiringSoon"`
}

func toMaterialDTO(m inventory.Material) MaterialDTO {
	dto := MaterialDTO{
		ID:                     m.ID,
		Name:                   m.Name,
		SKU:                    m.SKU,
		Description:            m.Description,
		Category:               m.Category,
		Supplier:               m.Supplier,
		Unit:                   string(m.Unit),
		UnitPrice:              m.UnitPrice,
		CurrentStock:           m.CurrentStock,
		MinStock:               m.MinStock,
		MaxStock:               m.MaxStock,
		Location:               m.Location,
		BatchNumber:            m.BatchNumber,
		INCIName:               m.INCIName,
		CASNumber:              m.CASNumber,
		SuitableForCosmetics:   m.SuitableForCosmetics,
		SuitableForSupplements: m.SuitableForSupplements,
		Certifications:         m.Certifications,
		Notes:                  m.Notes,
		Status:                 string(m.Status),
		LowStock:               m.IsLowStock(),
		CreatedAt:              m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              m.UpdatedAt.Format(time.RFC3339),
	}
	if m.ExpiryDate != nil {
		s := m.ExpiryDate.Format(dateLayout)
		dto.ExpiryDate = &s
	}
	return dto
}

func toMaterialDTOs(ms []inventory.Material) []MaterialDTO {
	dtos := make([]MaterialDTO, len(ms))
	for i, m := range ms {
		dtos[i] = toMaterialDTO(m)
	}
	return dtos
}

// =============================================================================
// FORMULAS
// =============================================================================

type IngredientDTO struct {
	ID           string          `json:"id"`
	MaterialID   string          `json:"materialId"`
	MaterialName string          `json:"materialName"`
	MaterialSKU  string          `json:"materialSku"`
	Phase        string          `json:"phase"`
	Percentage   decimal.Decimal `json:"percentage"`
	WeightGrams  decimal.Decimal `json:"weightGrams"`
	Notes        string          `json:"notes,omitempty"`
}

type ProductionStepDTO struct {
	ID          string           `json:"id"`
	StepNumber  int              `json:"stepNumber"`
	Phase       string           `json:"phase,omitempty"`
	Description string           `json:"description"`
	Temperature *decimal.Decimal `json:"temperature,omitempty"`
	MixingTime  int              `json:"mixingTime,omitempty"`
	MixingSpeed string           `json:"mixingSpeed,omitempty"`
	Equipment   string           `json:"equipment,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

type FormulaDTO struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Version         string              `json:"version"`
	Description     string              `json:"description,omitempty"`
	Category        string              `json:"category,omitempty"`
	ClientID        string              `json:"clientId,omitempty"`
	ClientName      string              `json:"clientName,omitempty"`
	BatchSizeGrams  decimal.Decimal     `json:"batchSize"`
	TotalPercentage decimal.Decimal     `json:"totalPercentage"`
	Ingredients     []IngredientDTO     `json:"ingredients"`
	Steps           []ProductionStepDTO `json:"steps,omitempty"`
	Phases          []string            `json:"phases,omitempty"`
	Status          string              `json:"status"`
	DevelopedBy     string              `json:"developedBy,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       string              `json:"createdAt"`
	UpdatedAt       string              `json:"updatedAt"`
}

type FormulaRequest struct {
	Name           string              `json:"name"`
	Version        string              `json:"version"`
	Description    string              `json:"description"`
	Category       string              `json:"category"`
	ClientID       string              `json:"clientId"`
	BatchSizeGrams decimal.Decimal     `json:"batchSize"`
	Ingredients    []IngredientDTO     `json:"ingredients"`
	Steps          []ProductionStepDTO `json:"steps"`
	Phases         []string            `json:"phases"`
	Status         string              `json:"status"`
	DevelopedBy    string              `json:"developedBy"`
	Notes          string              `json:"notes"`
}

func toFormulaDTO(f catalog.Formula) FormulaDTO {
	ingredients := make([]IngredientDTO, len(f.Ingredients))
	for i, ing := range f.Ingredients {
		ingredients[i] = IngredientDTO{
			ID:           ing.ID,
			MaterialID:   ing.MaterialID,
			MaterialName: ing.MaterialName,
			MaterialSKU:  ing.MaterialSKU,
			Phase:        ing.Phase,
			Percentage:   ing.Percentage,
			WeightGrams:  ing.WeightGrams,
			Notes:        ing.Notes,
		}
	}
	steps := make([]ProductionStepDTO, len(f.Steps))
	for i, st := range f.Steps {
		steps[i] = ProductionStepDTO{
			ID:          st.ID,
			StepNumber:  st.StepNumber,
			Phase:       st.Phase,
			Description: st.Description,
			Temperature: st.Temperature,
			MixingTime:  st.MixingTime,
			MixingSpeed: st.MixingSpeed,
			Equipment:   st.Equipment,
			Notes:       st.Notes,
		}
	}
	return FormulaDTO{
		ID:              f.ID,
		Name:            f.Name,
		Version:         f.Version,
		Description:     f.Description,
		Category:        f.Category,
		ClientID:        f.ClientID,
		ClientName:      f.ClientName,
		BatchSizeGrams:  f.BatchSizeGrams,
		TotalPercentage: f.TotalPercentage,
		Ingredients:     ingredients,
		Steps:           steps,
		Phases:          f.Phases,
		Status:          string(f.Status),
		DevelopedBy:     f.DevelopedBy,
		Notes:           f.Notes,
		CreatedAt:       f.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       f.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// CLIENTS
// =============================================================================

type ClientDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Company   string `json:"company,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type ClientRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

func toClientDTO(c catalog.Client) ClientDTO {
	return ClientDTO{
		ID:        c.ID,
		Name:      c.Name,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// BATCHES
// =============================================================================

type BatchIngredientDTO struct {
	ID            string          `json:"id"`
	MaterialID    string          `json:"materialId"`
	MaterialName  string          `json:"materialName"`
	MaterialSKU   string          `json:"materialSku"`
	RequiredGrams decimal.Decimal `json:"requiredGrams"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	LineCost      decimal.Decimal `json:"lineCost"`
	Phase         string          `json:"phase,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

type StockWarningDTO struct {
	MaterialID   string          `json:"materialId"`
	MaterialName string          `json:"materialName"`
	RequiredKg   decimal.Decimal `json:"requiredKg"`
	AvailableKg  decimal.Decimal `json:"availableKg"`
}

type BatchDTO struct {
	ID               string               `json:"id"`
	BatchNumber      string               `json:"batchNumber"`
	FormulaID        string               `json:"formulaId"`
	FormulaName      string               `json:"formulaName"`
	FormulaVersion   string               `json:"formulaVersion"`
	ClientID         string               `json:"clientId,omitempty"`
	ClientName       string               `json:"clientName,omitempty"`
	UnitsToProduce   int                  `json:"unitsToProduce"`
	VolumePerUnit    decimal.Decimal      `json:"volumePerUnit"`
	TotalVolume      decimal.Decimal      `json:"totalVolume"`
	TotalWeightGrams decimal.Decimal      `json:"totalWeight"`
	ScaleFactor      decimal.Decimal      `json:"scaleFactor"`
	ProductionDate   string               `json:"productionDate"`
	PlannedDate      *string              `json:"plannedDate,omitempty"`
	Status           string               `json:"status"`
	Ingredients      []BatchIngredientDTO `json:"ingredients"`
	TotalCost        decimal.Decimal      `json:"totalCost"`
	CostPerUnit      decimal.Decimal      `json:"costPerUnit"`
	ProducedBy       string               `json:"producedBy,omitempty"`
	Notes            string               `json:"notes,omitempty"`
	CreatedAt        string               `json:"createdAt"`
	UpdatedAt        string               `json:"updatedAt"`
	StartedAt        *string              `json:"startedAt,omitempty"`
	CompletedAt      *string              `json:"completedAt,omitempty"`
}

type CreateBatchRequest struct {
	FormulaID      string          `json:"formulaId"`
	ClientID       string          `json:"clientId"`
	UnitsToProduce int             `json:"unitsToProduce"`
	VolumePerUnit  decimal.Decimal `json:"volumePerUnit"`
	ProductionDate string          `json:"productionDate"` // YYYY-MM-DD
	PlannedDate    *string         `json:"plannedDate"`    // YYYY-MM-DD, set = plan for later
	ProducedBy     string          `json:"producedBy"`
	Notes          string          `json:"notes"`
}

type CreateBatchResponse struct {
	Batch    BatchDTO          `json:"batch"`
	Warnings []StockWarningDTO `json:"warnings,omitempty"`
	Started  *bool             `json:"started,omitempty"` // immediate-start path only
}

type StartBatchResponse struct {
	Started   bool              `json:"started"`
	Shortages []StockWarningDTO `json:"shortages,omitempty"`
	Batch     *BatchDTO         `json:"batch,omitempty"`
}

func toBatchDTO(b production.Batch) BatchDTO {
	ingredients := make([]BatchIngredientDTO, len(b.Ingredients))
	for i, ing := range b.Ingredients {
		ingredients[i] = BatchIngredientDTO{
			ID:            ing.ID,
			MaterialID:    ing.MaterialID,
			MaterialName:  ing.MaterialName,
			MaterialSKU:   ing.MaterialSKU,
			RequiredGrams: ing.RequiredGrams,
			UnitPrice:     ing.UnitPrice,
			LineCost:      ing.LineCost,
			Phase:         ing.Phase,
			Notes:         ing.Notes,
		}
	}
	dto := BatchDTO{
		ID:               b.ID,
		BatchNumber:      b.BatchNumber,
		FormulaID:        b.FormulaID,
		FormulaName:      b.FormulaName,
		FormulaVersion:   b.FormulaVersion,
		ClientID:         b.ClientID,
		ClientName:       b.ClientName,
		UnitsToProduce:   b.UnitsToProduce,
		VolumePerUnit:    b.VolumePerUnit,
		TotalVolume:      b.TotalVolume,
		TotalWeightGrams: b.TotalWeightGrams,
		ScaleFactor:      b.ScaleFactor,
		ProductionDate:   b.ProductionDate.Format(dateLayout),
		Status:           string(b.Status),
		Ingredients:      ingredients,
		TotalCost:        b.TotalCost,
		CostPerUnit:      b.CostPerUnit,
		ProducedBy:       b.ProducedBy,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        b.UpdatedAt.Format(time.RFC3339),
	}
	if b.PlannedDate != nil {
		s := b.PlannedDate.Format(dateLayout)
		dto.PlannedDate = &s
	}
	if b.StartedAt != nil {
		s := b.StartedAt.Format(time.RFC3339)
		dto.StartedAt = &s
	}
	if b.CompletedAt != nil {
		s := b.CompletedAt.Format(time.RFC3339)
		dto.CompletedAt = &s
	}
	return dto
}

func toStockWarningDTOs(ws []production.StockWarning) []StockWarningDTO {
	if len(ws) == 0 {
		return nil
	}
	dtos := make([]StockWarningDTO, len(ws))
	for i, w := range ws {
		dtos[i] = StockWarningDTO{
			MaterialID:   w.MaterialID,
			MaterialName: w.MaterialName,
			RequiredKg:   w.RequiredKg,
			AvailableKg:  w.AvailableKg,
		}
	}
	return dtos
}
