/*
handlers.go - HTTP handlers for the production engine API

PURPOSE:
  Thin translation layer: decode JSON, call into the domain packages,
  encode the result. No business rules live here; stock and lifecycle
  decisions belong to production.Manager and inventory.Ledger.

ERROR MAPPING:
  - validation / malformed input        400
  - unresolved id (any collection)      404
  - illegal lifecycle transition,
    unapproved formula, negative stock  409
  - everything else                     500 (logged)

SEE ALSO:
  - server.go: route definitions
  - dto.go: request/response shapes
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/formlab/production-engine/catalog"
	"github.com/formlab/production-engine/inventory"
	"github.com/formlab/production-engine/production"
)

// Handler holds the dependencies the HTTP layer needs. Stores are the
// interface types so tests can run the handlers over the memory store.
type Handler struct {
	Manager   *production.Manager
	Materials inventory.Store
	Formulas  catalog.FormulaStore
	Clients   catalog.ClientStore
	Log       *logrus.Logger
}

func NewHandler(m *production.Manager, materials inventory.Store, formulas catalog.FormulaStore, clients catalog.ClientStore, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Manager:   m,
		Materials: materials,
		Formulas:  formulas,
		Clients:   clients,
		Log:       log,
	}
}

// =============================================================================
// MATERIAL ENDPOINTS
// =============================================================================

// ListMaterials returns all materials in insertion order.
// GET /api/materials
func (h *Handler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.Materials.ListMaterials(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to list materials", err)
		return
	}
	writeJSON(w, http.StatusOK, toMaterialDTOs(materials))
}

// CreateMaterial adds a material to the inventory.
// POST /api/materials
func (h *Handler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req MaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	now := time.Now()
	m, err := materialFromRequest(req, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid material", err)
		return
	}
	m.ID = uuid.NewString()
	m.CreatedAt = now

	if err := h.Materials.SaveMaterial(r.Context(), *m); err != nil {
		h.internalError(w, r, "Failed to save material", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMaterialDTO(*m))
}

// GetMaterial returns a single material.
// GET /api/materials/{id}
func (h *Handler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	m, err := h.Materials.GetMaterial(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.mapError(w, r, "Failed to get material", err)
		return
	}
	writeJSON(w, http.StatusOK, toMaterialDTO(*m))
}

// UpdateMaterial replaces a material's editable fields. CurrentStock is
// editable here too: this is the inventory screen's correction path, not
// production consumption (which goes through the ledger).
// PUT /api/materials/{id}
func (h *Handler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	existing, err := h.Materials.GetMaterial(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.mapError(w, r, "Failed to get material", err)
		return
	}

	var req MaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	m, err := materialFromRequest(req, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid material", err)
		return
	}
	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt

	if err := h.Materials.SaveMaterial(r.Context(), *m); err != nil {
		h.internalError(w, r, "Failed to save material", err)
		return
	}
	writeJSON(w, http.StatusOK, toMaterialDTO(*m))
}

// DeleteMaterial removes a material.
// DELETE /api/materials/{id}
func (h *Handler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Materials.GetMaterial(r.Context(), id); err != nil {
		h.mapError(w, r, "Failed to get material", err)
		return
	}
	if err := h.Materials.DeleteMaterial(r.Context(), id); err != nil {
		h.internalError(w, r, "Failed to delete material", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdjustStock applies a stock delta (positive for receipts, negative for
// manual write-offs). Rejected whole if the result would be negative.
// POST /api/materials/{id}/adjust-stock
func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	id := chi.URLParam(r, "id")
	ledger := inventory.NewLedger(h.Materials)
	if err := ledger.AdjustStock(r.Context(), id, req.Delta); err != nil {
		h.mapError(w, r, "Failed to adjust stock", err)
		return
	}

	m, err := ledger.Get(r.Context(), id)
	if err != nil {
		h.mapError(w, r, "Failed to get material", err)
		return
	}
	writeJSON(w, http.StatusOK, toMaterialDTO(*m))
}

// StockReport returns the low-stock and expiry overview.
// GET /api/materials/report
func (h *Handler) StockReport(w http.ResponseWriter, r *http.Request) {
	report, err := inventory.BuildStockReport(r.Context(), inventory.NewLedger(h.Materials), time.Now(), inventory.DefaultExpiryWindow)
	if err != nil {
		h.internalError(w, r, "Failed to build stock report", err)
		return
	}
	writeJSON(w, http.StatusOK, StockReportDTO{
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		TotalCount:   report.TotalCount,
		LowStock:     toMaterialDTOs(report.LowStock),
		Expired:      toMaterialDTOs(report.Expired),
		ExpiringSoon: toMaterialDTOs(report.ExpiringSoon),
	})
}

// MaterialTemplate serves the CSV import template.
// GET /api/materials/template
func (h *Handler) MaterialTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="materials-template.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(inventory.CSVTemplate()))
}

// ImportMaterials bulk-imports materials from a CSV body. Bad rows are
// skipped and reported; a bad header fails the whole request.
// POST /api/materials/import
func (h *Handler) ImportMaterials(w http.ResponseWriter, r *http.Request) {
	result, err := inventory.ImportCSV(r.Context(), h.Materials, r.Body, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Import failed", err)
		return
	}

	dto := ImportResultDTO{Imported: result.Imported}
	for _, rowErr := range result.Skipped {
		dto.Skipped = append(dto.Skipped, rowErr.Error())
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// FORMULA ENDPOINTS
// =============================================================================

// ListFormulas returns all formulas. ?status=approved narrows to
// production-eligible ones.
// GET /api/formulas
func (h *Handler) ListFormulas(w http.ResponseWriter, r *http.Request) {
	formulas, err := h.Formulas.ListFormulas(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to list formulas", err)
		return
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status, err := catalog.ParseFormulaStatus(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid status filter", err)
			return
		}
		filtered := formulas[:0]
		for _, f := range formulas {
			if f.Status == status {
				filtered = append(filtered, f)
			}
		}
		formulas = filtered
	}

	dtos := make([]FormulaDTO, len(formulas))
	for i, f := range formulas {
		dtos[i] = toFormulaDTO(f)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateFormula adds a formula to the catalog.
// POST /api/formulas
func (h *Handler) CreateFormula(w http.ResponseWriter, r *http.Request) {
	var req FormulaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	now := time.Now()
	f, err := h.formulaFromRequest(r, req, now)
	if err != nil {
		h.mapError(w, r, "Invalid formula", err)
		return
	}
	f.ID = uuid.NewString()
	f.CreatedAt = now

	if err := h.Formulas.SaveFormula(r.Context(), *f); err != nil {
		h.internalError(w, r, "Failed to save formula", err)
		return
	}
	writeJSON(w, http.StatusCreated, toFormulaDTO(*f))
}

// GetFormula returns a single formula.
// GET /api/formulas/{id}
func (h *Handler) GetFormula(w http.ResponseWriter, r *http.Request) {
	f, err := h.Formulas.GetFormula(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.mapError(w, r, "Failed to get formula", err)
		return
	}
	writeJSON(w, http.StatusOK, toFormulaDTO(*f))
}

// UpdateFormula replaces a formula. Batches already produced from the
// old revision keep their snapshots.
// PUT /api/formulas/{id}
func (h *Handler) UpdateFormula(w http.ResponseWriter, r *http.Request) {
	existing, err := h.Formulas.GetFormula(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.mapError(w, r, "Failed to get formula", err)
		return
	}

	var req FormulaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	f, err := h.formulaFromRequest(r, req, time.Now())
	if err != nil {
		h.mapError(w, r, "Invalid formula", err)
		return
	}
	f.ID = existing.ID
	f.CreatedAt = existing.CreatedAt

	if err := h.Formulas.SaveFormula(r.Context(), *f); err != nil {
		h.internalError(w, r, "Failed to save formula", err)
		return
	}
	writeJSON(w, http.StatusOK, toFormulaDTO(*f))
}

// DeleteFormula removes a formula. Existing batches keep their snapshots.
// DELETE /api/formulas/{id}
func (h *Handler) DeleteFormula(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Formulas.GetFormula(r.Context(), id); err != nil {
		h.mapError(w, r, "Failed to get formula", err)
		return
	}
	if err := h.Formulas.DeleteFormula(r.Context(), id); err != nil {
		h.internalError(w, r, "Failed to delete formula", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) formulaFromRequest(r *http.Request, req FormulaRequest, now time.Time) (*catalog.Formula, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &catalog.ValidationError{Field: "name", Message: "required"}
	}
	if !req.BatchSizeGrams.IsPositive() {
		return nil, &catalog.ValidationError{Field: "batchSize", Message: "must be positive"}
	}
	status := catalog.FormulaDraft
	if req.Status != "" {
		var err error
		status, err = catalog.ParseFormulaStatus(req.Status)
		if err != nil {
			return nil, err
		}
	}

	var clientName string
	if req.ClientID != "" {
		client, err := h.Clients.GetClient(r.Context(), req.ClientID)
		if err != nil {
			return nil, err
		}
		clientName = client.Name
	}

	ingredients := make([]catalog.Ingredient, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		id := ing.ID
		if id == "" {
			id = uuid.NewString()
		}
		ingredients[i] = catalog.Ingredient{
			ID:           id,
			MaterialID:   ing.MaterialID,
			MaterialName: ing.MaterialName,
			MaterialSKU:  ing.MaterialSKU,
			Phase:        ing.Phase,
			Percentage:   ing.Percentage,
			Notes:        ing.Notes,
		}
	}
	steps := make([]catalog.ProductionStep, len(req.Steps))
	for i, st := range req.Steps {
		id := st.ID
		if id == "" {
			id = uuid.NewString()
		}
		steps[i] = catalog.ProductionStep{
			ID:          id,
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

	f := &catalog.Formula{
		Name:           req.Name,
		Version:        req.Version,
		Description:    req.Description,
		Category:       req.Category,
		ClientID:       req.ClientID,
		ClientName:     clientName,
		BatchSizeGrams: req.BatchSizeGrams,
		Ingredients:    ingredients,
		Steps:          steps,
		Phases:         req.Phases,
		Status:         status,
		DevelopedBy:    req.DevelopedBy,
		Notes:          req.Notes,
		UpdatedAt:      now,
	}
	f.RecomputeWeights()
	return f, nil
}

// =============================================================================
// CLIENT ENDPOINTS
// =============================================================================

// ListClients returns all clients.
// GET /api/clients
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Clients.ListClients(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to list clients", err)
		return
	}
	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = toClientDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateClient adds a client.
// POST /api/clients
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Invalid client", &catalog.ValidationError{Field: "name", Message: "required"})
		return
	}

	now := time.Now()
	c := catalog.Client{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Company:   req.Company,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Clients.SaveClient(r.Context(), c); err != nil {
		h.internalError(w, r, "Failed to save client", err)
		return
	}
	writeJSON(w, http.StatusCreated, toClientDTO(c))
}

// GetClient returns a single client.
// GET /api/clients/{id}
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.Clients.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.mapError(w, r, "Failed to get client", err)
		return
	}
	writeJSON(w, http.StatusOK, toClientDTO(*c))
}

// UpdateClient replaces a client's fields.
// PUT /api/clients/{id}
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	existing, err := h.Clients.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.mapError(w, r, "Failed to get client", err)
		return
	}

	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Invalid client", &catalog.ValidationError{Field: "name", Message: "required"})
		return
	}

	c := catalog.Client{
		ID:        existing.ID,
		Name:      req.Name,
		Company:   req.Company,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now(),
	}
	if err := h.Clients.SaveClient(r.Context(), c); err != nil {
		h.internalError(w, r, "Failed to save client", err)
		return
	}
	writeJSON(w, http.StatusOK, toClientDTO(c))
}

// DeleteClient removes a client.
// DELETE /api/clients/{id}
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Clients.GetClient(r.Context(), id); err != nil {
		h.mapError(w, r, "Failed to get client", err)
		return
	}
	if err := h.Clients.DeleteClient(r.Context(), id); err != nil {
		h.internalError(w, r, "Failed to delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// BATCH ENDPOINTS
// =============================================================================

// ListBatches returns batches filtered and sorted per query parameters:
// search, status (comma-separated), formulaId, clientId, from, to
// (YYYY-MM-DD, inclusive on productionDate), sort, dir.
// GET /api/batches
func (h *Handler) ListBatches(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query", err)
		return
	}

	batches, err := h.Manager.ListBatches(r.Context(), q)
	if err != nil {
		h.internalError(w, r, "Failed to list batches", err)
		return
	}
	dtos := make([]BatchDTO, len(batches))
	for i, b := range batches {
		dtos[i] = toBatchDTO(b)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateBatch creates a production batch. With plannedDate set the batch
// is planned for later; without it production starts immediately,
// deducting stock (or reporting shortages with started=false).
// POST /api/batches
func (h *Handler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	productionDate, err := time.Parse(dateLayout, req.ProductionDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid productionDate", err)
		return
	}
	var plannedDate *time.Time
	if req.PlannedDate != nil && *req.PlannedDate != "" {
		t, err := time.Parse(dateLayout, *req.PlannedDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid plannedDate", err)
			return
		}
		plannedDate = &t
	}

	result, err := h.Manager.CreateBatch(r.Context(), production.CreateBatchInput{
		FormulaID:      req.FormulaID,
		ClientID:       req.ClientID,
		UnitsToProduce: req.UnitsToProduce,
		VolumePerUnit:  req.VolumePerUnit,
		ProductionDate: productionDate,
		PlannedDate:    plannedDate,
		ProducedBy:     req.ProducedBy,
		Notes:          req.Notes,
	})
	if err != nil {
		h.mapError(w, r, "Failed to create batch", err)
		return
	}

	resp := CreateBatchResponse{
		Batch:    toBatchDTO(*result.Batch),
		Warnings: toStockWarningDTOs(result.Warnings),
	}
	if result.Start != nil {
		started := result.Start.Started
		resp.Started = &started
		if !started {
			resp.Warnings = toStockWarningDTOs(result.Start.Shortages)
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

// GetBatch returns a single batch.
// GET /api/batches/{id}
func (h *Handler) GetBatch(w http.ResponseWriter, r *http.Request) {
	b, err := h.Manager.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.mapError(w, r, "Failed to get batch", err)
		return
	}
	writeJSON(w, http.StatusOK, toBatchDTO(*b))
}

// DeleteBatch removes a batch record. No stock reversal.
// DELETE /api/batches/{id}
func (h *Handler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	if err := h.Manager.DeleteBatch(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.mapError(w, r, "Failed to delete batch", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartBatch starts a planned batch, deducting stock. A shortage is a
// 200 with started=false, not an error: the batch stays planned and the
// response lists every short material.
// POST /api/batches/{id}/start
func (h *Handler) StartBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := h.Manager.StartProduction(r.Context(), id)
	if err != nil {
		h.mapError(w, r, "Failed to start batch", err)
		return
	}

	resp := StartBatchResponse{
		Started:   result.Started,
		Shortages: toStockWarningDTOs(result.Shortages),
	}
	if b, err := h.Manager.GetBatch(r.Context(), id); err == nil {
		dto := toBatchDTO(*b)
		resp.Batch = &dto
	}
	writeJSON(w, http.StatusOK, resp)
}

// CompleteBatch completes an in-progress batch. Idempotent when already
// completed.
// POST /api/batches/{id}/complete
func (h *Handler) CompleteBatch(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Manager.CompleteProduction)
}

// CancelBatch cancels a planned or in-progress batch.
// POST /api/batches/{id}/cancel
func (h *Handler) CancelBatch(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Manager.CancelProduction)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) error) {
	id := chi.URLParam(r, "id")
	if err := fn(r.Context(), id); err != nil {
		h.mapError(w, r, "Failed to update batch", err)
		return
	}
	b, err := h.Manager.GetBatch(r.Context(), id)
	if err != nil {
		h.mapError(w, r, "Failed to get batch", err)
		return
	}
	writeJSON(w, http.StatusOK, toBatchDTO(*b))
}

func queryFromRequest(r *http.Request) (production.Query, error) {
	params := r.URL.Query()
	q := production.Query{Search: params.Get("search")}

	if s := params.Get("status"); s != "" {
		for _, part := range strings.Split(s, ",") {
			status, err := production.ParseBatchStatus(strings.TrimSpace(part))
			if err != nil {
				return q, err
			}
			q.Status = append(q.Status, status)
		}
	}
	if s := params.Get("formulaId"); s != "" {
		q.FormulaIDs = strings.Split(s, ",")
	}
	if s := params.Get("clientId"); s != "" {
		q.ClientIDs = strings.Split(s, ",")
	}
	if s := params.Get("from"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return q, err
		}
		q.From = &t
	}
	if s := params.Get("to"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return q, err
		}
		q.To = &t
	}
	if s := params.Get("sort"); s != "" {
		field, err := production.ParseSortField(s)
		if err != nil {
			return q, err
		}
		q.SortField = field
	}
	if params.Get("dir") == string(production.SortDesc) {
		q.SortDir = production.SortDesc
	}
	return q, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func materialFromRequest(req MaterialRequest, now time.Time) (*inventory.Material, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &inventory.ValidationError{Field: "name", Message: "required"}
	}
	if strings.TrimSpace(req.SKU) == "" {
		return nil, &inventory.ValidationError{Field: "sku", Message: "required"}
	}
	unit, err := inventory.ParseUnit(req.Unit)
	if err != nil {
		return nil, err
	}
	status := inventory.MaterialActive
	if req.Status != "" {
		status, err = inventory.ParseMaterialStatus(req.Status)
		if err != nil {
			return nil, err
		}
	}
	for _, check := range []struct {
		field string
		value interface{ IsNegative() bool }
	}{
		{"unitPrice", req.UnitPrice},
		{"currentStock", req.CurrentStock},
		{"minStock", req.MinStock},
		{"maxStock", req.MaxStock},
	} {
		if check.value.IsNegative() {
			return nil, &inventory.ValidationError{Field: check.field, Message: "must not be negative"}
		}
	}

	var expiry *time.Time
	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		t, err := time.Parse(dateLayout, *req.ExpiryDate)
		if err != nil {
			return nil, &inventory.ValidationError{Field: "expiryDate", Message: "want YYYY-MM-DD, got " + *req.ExpiryDate}
		}
		expiry = &t
	}

	return &inventory.Material{
		Name:                   req.Name,
		SKU:                    req.SKU,
		Description:            req.Description,
		Category:               req.Category,
		Supplier:               req.Supplier,
		Unit:                   unit,
		UnitPrice:              req.UnitPrice,
		CurrentStock:           req.CurrentStock,
		MinStock:               req.MinStock,
		MaxStock:               req.MaxStock,
		Location:               req.Location,
		ExpiryDate:             expiry,
		BatchNumber:            req.BatchNumber,
		INCIName:               req.INCIName,
		CASNumber:              req.CASNumber,
		SuitableForCosmetics:   req.SuitableForCosmetics,
		SuitableForSupplements: req.SuitableForSupplements,
		Certifications:         req.Certifications,
		Notes:                  req.Notes,
		Status:                 status,
		UpdatedAt:              now,
	}, nil
}

// mapError translates domain errors to HTTP statuses.
func (h *Handler) mapError(w http.ResponseWriter, r *http.Request, message string, err error) {
	var invValidation *inventory.ValidationError
	var catValidation *catalog.ValidationError

	switch {
	case errors.Is(err, production.ErrInvalidInput),
		errors.As(err, &invValidation),
		errors.As(err, &catValidation):
		writeError(w, http.StatusBadRequest, message, err)
	case production.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, production.ErrInvalidTransition),
		errors.Is(err, production.ErrFormulaNotApproved),
		errors.Is(err, inventory.ErrStockNegative):
		writeError(w, http.StatusConflict, message, err)
	default:
		h.internalError(w, r, message, err)
	}
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	h.Log.WithError(err).WithField("path", r.URL.Path).Error(message)
	writeError(w, http.StatusInternalServerError, message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
