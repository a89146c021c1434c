/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements every persistence interface the engine consumes
  (inventory.Store, catalog.FormulaStore, catalog.ClientStore,
  production.BatchStore, production.TxStore) on SQLite. The same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  materials:  raw materials with decimal stock/pricing columns
  formulas:   formula definitions; ingredients and steps as JSON
  clients:    client directory
  batches:    production batches; priced ingredient snapshots as JSON

REPRESENTATION:
  - Decimals are stored as TEXT and parsed with shopspring/decimal;
    REAL columns would reintroduce the float drift the engine avoids.
  - Timestamps are RFC 3339 TEXT, nullable where the domain field is
    optional.
  - Insertion order is rowid order; upserts keep the original rowid.

WAL MODE:
  Opened with WAL for better concurrency: readers don't block, single
  writer, better crash recovery.

TRANSACTIONS:
  WithTx runs fn against a view whose statements go through one
  database transaction. Start-production's check-then-deduct runs here.

USAGE:
  store, err := sqlite.New("./data/lab.db")
  if err != nil { ... }
  defer store.Close()

SEE ALSO:
  - production/store.go: interface definitions
  - store/memory: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/formlab/production-engine/catalog"
	"github.com/formlab/production-engine/inventory"
	"github.com/formlab/production-engine/production"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	q  queryer
}

// queryer abstracts *sql.DB and *sql.Tx so the same methods serve both
// direct calls and WithTx views.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ inventory.Store      = (*Store)(nil)
	_ catalog.FormulaStore = (*Store)(nil)
	_ catalog.ClientStore  = (*Store)(nil)
	_ production.TxStore   = (*Store)(nil)
)

// New opens (or creates) the database and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; a single pooled connection avoids
	// "database is locked" and keeps ":memory:" databases from being
	// opened once per connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, q: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logrus.WithField("path", dbPath).Debug("sqlite store ready")
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS materials (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		sku TEXT NOT NULL,
		description TEXT,
		category TEXT,
		supplier TEXT,
		unit TEXT NOT NULL,
		unit_price TEXT NOT NULL,
		current_stock TEXT NOT NULL,
		min_stock TEXT NOT NULL,
		max_stock TEXT NOT NULL,
		location TEXT,
		expiry_date TEXT,
		batch_number TEXT,
		inci_name TEXT,
		cas_number TEXT,
		suitable_cosmetics INTEGER NOT NULL DEFAULT 0,
		suitable_supplements INTEGER NOT NULL DEFAULT 0,
		certifications_json TEXT,
		notes TEXT,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_materials_sku ON materials(sku);
	CREATE INDEX IF NOT EXISTS idx_materials_category ON materials(category);

	CREATE TABLE IF NOT EXISTS formulas (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		version TEXT NOT NULL,
		description TEXT,
		category TEXT,
		client_id TEXT,
		client_name TEXT,
		batch_size TEXT NOT NULL,
		total_percentage TEXT NOT NULL,
		ingredients_json TEXT NOT NULL,
		steps_json TEXT,
		phases_json TEXT,
		status TEXT NOT NULL,
		developed_by TEXT,
		notes TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_formulas_status ON formulas(status);

	CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		company TEXT,
		email TEXT,
		phone TEXT,
		notes TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS batches (
		id TEXT PRIMARY KEY,
		batch_number TEXT NOT NULL UNIQUE,
		formula_id TEXT NOT NULL,
		formula_name TEXT NOT NULL,
		formula_version TEXT NOT NULL,
		client_id TEXT,
		client_name TEXT,
		units INTEGER NOT NULL,
		volume_per_unit TEXT NOT NULL,
		total_volume TEXT NOT NULL,
		total_weight TEXT NOT NULL,
		scale_factor TEXT NOT NULL,
		production_date TEXT NOT NULL,
		planned_date TEXT,
		status TEXT NOT NULL,
		ingredients_json TEXT NOT NULL,
		total_cost TEXT NOT NULL,
		cost_per_unit TEXT NOT NULL,
		produced_by TEXT,
		notes TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		started_at TEXT,
		completed_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_batches_status ON batches(status);
	CREATE INDEX IF NOT EXISTS idx_batches_formula ON batches(formula_id);
	CREATE INDEX IF NOT EXISTS idx_batches_production_date ON batches(production_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TRANSACTIONS (production.TxStore)
// =============================================================================

// WithTx executes fn within a database transaction. Nested calls reuse
// the enclosing transaction.
func (s *Store) WithTx(ctx context.Context, fn func(production.Store) error) error {
	if _, nested := s.q.(*sql.Tx); nested {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	view := &Store{db: s.db, q: tx}
	if err := fn(view); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logrus.WithError(rbErr).Error("transaction rollback failed")
		}
		return err
	}
	return tx.Commit()
}

// =============================================================================
// MATERIALS (inventory.Store)
// =============================================================================

const materialColumns = `id, name, sku, description, category, supplier, unit,
	unit_price, current_stock, min_stock, max_stock, location, expiry_date,
	batch_number, inci_name, cas_number, suitable_cosmetics,
	suitable_supplements, certifications_json, notes, status, created_at,
	updated_at`

func (s *Store) GetMaterial(ctx context.Context, id string) (*inventory.Material, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = ?`, id)
	m, err := scanMaterial(row)
	if err == sql.ErrNoRows {
		return nil, inventory.ErrMaterialNotFound
	}
	return m, err
}

func (s *Store) ListMaterials(ctx context.Context) ([]inventory.Material, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []inventory.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (s *Store) SaveMaterial(ctx context.Context, m inventory.Material) error {
	certs, err := json.Marshal(m.Certifications)
	if err != nil {
		return err
	}
	_, err = s.q.ExecContext(ctx, `
		INSERT INTO materials (`+materialColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, sku=excluded.sku, description=excluded.description,
			category=excluded.category, supplier=excluded.supplier,
			unit=excluded.unit, unit_price=excluded.unit_price,
			current_stock=excluded.current_stock, min_stock=excluded.min_stock,
			max_stock=excluded.max_stock, location=excluded.location,
			expiry_date=excluded.expiry_date, batch_number=excluded.batch_number,
			inci_name=excluded.inci_name, cas_number=excluded.cas_number,
			suitable_cosmetics=excluded.suitable_cosmetics,
			suitable_supplements=excluded.suitable_supplements,
			certifications_json=excluded.certifications_json,
			notes=excluded.notes, status=excluded.status,
			updated_at=excluded.updated_at`,
		m.ID, m.Name, m.SKU, m.Description, m.Category, m.Supplier,
		string(m.Unit), m.UnitPrice.String(), m.CurrentStock.String(),
		m.MinStock.String(), m.MaxStock.String(), m.Location,
		nullableTime(m.ExpiryDate), m.BatchNumber, m.INCIName, m.CASNumber,
		boolToInt(m.SuitableForCosmetics), boolToInt(m.SuitableForSupplements),
		string(certs), m.Notes, string(m.Status),
		formatTime(m.CreatedAt), formatTime(m.UpdatedAt))
	return err
}

func (s *Store) DeleteMaterial(ctx context.Context, id string) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM materials WHERE id = ?`, id)
	return err
}

func scanMaterial(row scanner) (*inventory.Material, error) {
	var (
		m                    inventory.Material
		unit, status         string
		price, cur, min, max string
		expiry               sql.NullString
		cosmetics, supps     int
		certsJSON            sql.NullString
		created, updated     string
	)
	err := row.Scan(&m.ID, &m.Name, &m.SKU, &m.Description, &m.Category,
		&m.Supplier, &unit, &price, &cur, &min, &max, &m.Location, &expiry,
		&m.BatchNumber, &m.INCIName, &m.CASNumber, &cosmetics, &supps,
		&certsJSON, &m.Notes, &status, &created, &updated)
	if err != nil {
		return nil, err
	}

	m.Unit = inventory.Unit(unit)
	m.Status = inventory.MaterialStatus(status)
	m.SuitableForCosmetics = cosmetics != 0
	m.SuitableForSupplements = supps != 0

	if m.UnitPrice, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("material %s: bad unit_price: %w", m.ID, err)
	}
	if m.CurrentStock, err = decimal.NewFromString(cur); err != nil {
		return nil, fmt.Errorf("material %s: bad current_stock: %w", m.ID, err)
	}
	if m.MinStock, err = decimal.NewFromString(min); err != nil {
		return nil, fmt.Errorf("material %s: bad min_stock: %w", m.ID, err)
	}
	if m.MaxStock, err = decimal.NewFromString(max); err != nil {
		return nil, fmt.Errorf("material %s: bad max_stock: %w", m.ID, err)
	}
	if m.ExpiryDate, err = parseNullableTime(expiry); err != nil {
		return nil, err
	}
	if certsJSON.Valid && certsJSON.String != "" {
		if err := json.Unmarshal([]byte(certsJSON.String), &m.Certifications); err != nil {
			return nil, err
		}
	}
	if m.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &m, nil
}

// =============================================================================
// FORMULAS (catalog.FormulaStore)
// =============================================================================

const formulaColumns = `id, name, version, description, category, client_id,
	client_name, batch_size, total_percentage, ingredients_json, steps_json,
	phases_json, status, developed_by, notes, created_at, updated_at`

func (s *Store) GetFormula(ctx context.Context, id string) (*catalog.Formula, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+formulaColumns+` FROM formulas WHERE id = ?`, id)
	f, err := scanFormula(row)
	if err == sql.ErrNoRows {
		return nil, catalog.ErrFormulaNotFound
	}
	return f, err
}

func (s *Store) ListFormulas(ctx context.Context) ([]catalog.Formula, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+formulaColumns+` FROM formulas ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Formula
	for rows.Next() {
		f, err := scanFormula(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func (s *Store) SaveFormula(ctx context.Context, f catalog.Formula) error {
	ingredients, err := json.Marshal(f.Ingredients)
	if err != nil {
		return err
	}
	steps, err := json.Marshal(f.Steps)
	if err != nil {
		return err
	}
	phases, err := json.Marshal(f.Phases)
	if err != nil {
		return err
	}
	_, err = s.q.ExecContext(ctx, `
		INSERT INTO formulas (`+formulaColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, version=excluded.version,
			description=excluded.description, category=excluded.category,
			client_id=excluded.client_id, client_name=excluded.client_name,
			batch_size=excluded.batch_size,
			total_percentage=excluded.total_percentage,
			ingredients_json=excluded.ingredients_json,
			steps_json=excluded.steps_json, phases_json=excluded.phases_json,
			status=excluded.status, developed_by=excluded.developed_by,
			notes=excluded.notes, updated_at=excluded.updated_at`,
		f.ID, f.Name, f.Version, f.Description, f.Category, f.ClientID,
		f.ClientName, f.BatchSizeGrams.String(), f.TotalPercentage.String(),
		string(ingredients), string(steps), string(phases), string(f.Status),
		f.DevelopedBy, f.Notes, formatTime(f.CreatedAt), formatTime(f.UpdatedAt))
	return err
}

func (s *Store) DeleteFormula(ctx context.Context, id string) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM formulas WHERE id = ?`, id)
	return err
}

func scanFormula(row scanner) (*catalog.Formula, error) {
	var (
		f                        catalog.Formula
		batchSize, totalPct      string
		ingredients, steps       string
		phases                   sql.NullString
		status, created, updated string
	)
	err := row.Scan(&f.ID, &f.Name, &f.Version, &f.Description, &f.Category,
		&f.ClientID, &f.ClientName, &batchSize, &totalPct, &ingredients,
		&steps, &phases, &status, &f.DevelopedBy, &f.Notes, &created, &updated)
	if err != nil {
		return nil, err
	}

	f.Status = catalog.FormulaStatus(status)
	if f.BatchSizeGrams, err = decimal.NewFromString(batchSize); err != nil {
		return nil, fmt.Errorf("formula %s: bad batch_size: %w", f.ID, err)
	}
	if f.TotalPercentage, err = decimal.NewFromString(totalPct); err != nil {
		return nil, fmt.Errorf("formula %s: bad total_percentage: %w", f.ID, err)
	}
	if err := json.Unmarshal([]byte(ingredients), &f.Ingredients); err != nil {
		return nil, fmt.Errorf("formula %s: bad ingredients_json: %w", f.ID, err)
	}
	if steps != "" {
		if err := json.Unmarshal([]byte(steps), &f.Steps); err != nil {
			return nil, fmt.Errorf("formula %s: bad steps_json: %w", f.ID, err)
		}
	}
	if phases.Valid && phases.String != "" {
		if err := json.Unmarshal([]byte(phases.String), &f.Phases); err != nil {
			return nil, err
		}
	}
	if f.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if f.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &f, nil
}

// =============================================================================
// CLIENTS (catalog.ClientStore)
// =============================================================================

func (s *Store) GetClient(ctx context.Context, id string) (*catalog.Client, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, name, company, email, phone, notes, created_at, updated_at
		FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, catalog.ErrClientNotFound
	}
	return c, err
}

func (s *Store) ListClients(ctx context.Context) ([]catalog.Client, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, name, company, email, phone, notes, created_at, updated_at
		FROM clients ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *Store) SaveClient(ctx context.Context, c catalog.Client) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO clients (id, name, company, email, phone, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, company=excluded.company, email=excluded.email,
			phone=excluded.phone, notes=excluded.notes,
			updated_at=excluded.updated_at`,
		c.ID, c.Name, c.Company, c.Email, c.Phone, c.Notes,
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	return err
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	return err
}

func scanClient(row scanner) (*catalog.Client, error) {
	var (
		c                catalog.Client
		created, updated string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Notes,
		&created, &updated)
	if err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &c, nil
}

// =============================================================================
// BATCHES (production.BatchStore)
// =============================================================================

const batchColumns = `id, batch_number, formula_id, formula_name,
	formula_version, client_id, client_name, units, volume_per_unit,
	total_volume, total_weight, scale_factor, production_date, planned_date,
	status, ingredients_json, total_cost, cost_per_unit, produced_by, notes,
	created_at, updated_at, started_at, completed_at`

func (s *Store) GetBatch(ctx context.Context, id string) (*production.Batch, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = ?`, id)
	b, err := scanBatch(row)
	if err == sql.ErrNoRows {
		return nil, production.ErrBatchNotFound
	}
	return b, err
}

func (s *Store) ListBatches(ctx context.Context) ([]production.Batch, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+batchColumns+` FROM batches ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []production.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (s *Store) SaveBatch(ctx context.Context, b production.Batch) error {
	ingredients, err := json.Marshal(b.Ingredients)
	if err != nil {
		return err
	}
	_, err = s.q.ExecContext(ctx, `
		INSERT INTO batches (`+batchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			batch_number=excluded.batch_number, status=excluded.status,
			ingredients_json=excluded.ingredients_json,
			notes=excluded.notes, updated_at=excluded.updated_at,
			started_at=excluded.started_at, completed_at=excluded.completed_at`,
		b.ID, b.BatchNumber, b.FormulaID, b.FormulaName, b.FormulaVersion,
		b.ClientID, b.ClientName, b.UnitsToProduce, b.VolumePerUnit.String(),
		b.TotalVolume.String(), b.TotalWeightGrams.String(),
		b.ScaleFactor.String(), formatTime(b.ProductionDate),
		nullableTime(b.PlannedDate), string(b.Status), string(ingredients),
		b.TotalCost.String(), b.CostPerUnit.String(), b.ProducedBy, b.Notes,
		formatTime(b.CreatedAt), formatTime(b.UpdatedAt),
		nullableTime(b.StartedAt), nullableTime(b.CompletedAt))
	return err
}

func (s *Store) DeleteBatch(ctx context.Context, id string) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM batches WHERE id = ?`, id)
	return err
}

func scanBatch(row scanner) (*production.Batch, error) {
	var (
		b                               production.Batch
		volume, totalVolume, weight     string
		scale, totalCost, costPerUnit   string
		productionDate                  string
		plannedDate, started, completed sql.NullString
		status, ingredients             string
		created, updated                string
	)
	err := row.Scan(&b.ID, &b.BatchNumber, &b.FormulaID, &b.FormulaName,
		&b.FormulaVersion, &b.ClientID, &b.ClientName, &b.UnitsToProduce,
		&volume, &totalVolume, &weight, &scale, &productionDate, &plannedDate,
		&status, &ingredients, &totalCost, &costPerUnit, &b.ProducedBy,
		&b.Notes, &created, &updated, &started, &completed)
	if err != nil {
		return nil, err
	}

	b.Status = production.BatchStatus(status)
	if b.VolumePerUnit, err = decimal.NewFromString(volume); err != nil {
		return nil, fmt.Errorf("batch %s: bad volume_per_unit: %w", b.ID, err)
	}
	if b.TotalVolume, err = decimal.NewFromString(totalVolume); err != nil {
		return nil, fmt.Errorf("batch %s: bad total_volume: %w", b.ID, err)
	}
	if b.TotalWeightGrams, err = decimal.NewFromString(weight); err != nil {
		return nil, fmt.Errorf("batch %s: bad total_weight: %w", b.ID, err)
	}
	if b.ScaleFactor, err = decimal.NewFromString(scale); err != nil {
		return nil, fmt.Errorf("batch %s: bad scale_factor: %w", b.ID, err)
	}
	if b.TotalCost, err = decimal.NewFromString(totalCost); err != nil {
		return nil, fmt.Errorf("batch %s: bad total_cost: %w", b.ID, err)
	}
	if b.CostPerUnit, err = decimal.NewFromString(costPerUnit); err != nil {
		return nil, fmt.Errorf("batch %s: bad cost_per_unit: %w", b.ID, err)
	}
	if err := json.Unmarshal([]byte(ingredients), &b.Ingredients); err != nil {
		return nil, fmt.Errorf("batch %s: bad ingredients_json: %w", b.ID, err)
	}
	if b.ProductionDate, err = parseTime(productionDate); err != nil {
		return nil, err
	}
	if b.PlannedDate, err = parseNullableTime(plannedDate); err != nil {
		return nil, err
	}
	if b.StartedAt, err = parseNullableTime(started); err != nil {
		return nil, err
	}
	if b.CompletedAt, err = parseNullableTime(completed); err != nil {
		return nil, err
	}
	if b.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &b, nil
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseNullableTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
