/*
Package memory provides the in-memory store implementation (tests/dev).

PURPOSE:
  Implements every persistence interface the engine consumes
  (inventory.Store, catalog.FormulaStore, catalog.ClientStore,
  production.BatchStore, production.TxStore) over plain maps.

SEMANTICS:
  - Insertion order is preserved by List.
  - Reads and writes copy: mutating a returned value never changes
    stored state.
  - WithTx snapshots the whole store and restores it if fn fails.
    Transactions are serialized; a concurrent reader may observe
    intermediate writes of an in-flight transaction, which is acceptable
    for a dev/test store (the sqlite store gives real isolation).

SEE ALSO:
  - store/sqlite: the production implementation
*/
package memory

import (
	"context"
	"sync"

	"github.com/formlab/production-engine/catalog"
	"github.com/formlab/production-engine/inventory"
	"github.com/formlab/production-engine/production"
)

// Store is the in-memory implementation of all persistence interfaces.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	materials collection[inventory.Material]
	formulas  collection[catalog.Formula]
	clients   collection[catalog.Client]
	batches   collection[production.Batch]
}

// Compile-time interface checks.
var (
	_ inventory.Store      = (*Store)(nil)
	_ catalog.FormulaStore = (*Store)(nil)
	_ catalog.ClientStore  = (*Store)(nil)
	_ production.TxStore   = (*Store)(nil)
)

func New() *Store {
	return &Store{
		materials: newCollection[inventory.Material](),
		formulas:  newCollection[catalog.Formula](),
		clients:   newCollection[catalog.Client](),
		batches:   newCollection[production.Batch](),
	}
}

// =============================================================================
// ORDERED COLLECTION
// =============================================================================

type collection[T any] struct {
	ids   []string
	items map[string]T
}

func newCollection[T any]() collection[T] {
	return collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c *collection[T]) list() []T {
	out := make([]T, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.items[id])
	}
	return out
}

func (c *collection[T]) put(id string, v T) {
	if _, exists := c.items[id]; !exists {
		c.ids = append(c.ids, id)
	}
	c.items[id] = v
}

func (c *collection[T]) delete(id string) {
	if _, exists := c.items[id]; !exists {
		return
	}
	delete(c.items, id)
	for i, existing := range c.ids {
		if existing == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
}

func (c *collection[T]) snapshot(clone func(T) T) collection[T] {
	cp := collection[T]{
		ids:   append([]string(nil), c.ids...),
		items: make(map[string]T, len(c.items)),
	}
	for id, v := range c.items {
		cp.items[id] = clone(v)
	}
	return cp
}

// =============================================================================
// MATERIALS (inventory.Store)
// =============================================================================

func (s *Store) GetMaterial(_ context.Context, id string) (*inventory.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.materials.get(id)
	if !ok {
		return nil, inventory.ErrMaterialNotFound
	}
	m = cloneMaterial(m)
	return &m, nil
}

func (s *Store) ListMaterials(_ context.Context) ([]inventory.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.materials.list()
	for i := range out {
		out[i] = cloneMaterial(out[i])
	}
	return out, nil
}

func (s *Store) SaveMaterial(_ context.Context, m inventory.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials.put(m.ID, cloneMaterial(m))
	return nil
}

func (s *Store) DeleteMaterial(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials.delete(id)
	return nil
}

// =============================================================================
// FORMULAS (catalog.FormulaStore)
// =============================================================================

func (s *Store) GetFormula(_ context.Context, id string) (*catalog.Formula, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.formulas.get(id)
	if !ok {
		return nil, catalog.ErrFormulaNotFound
	}
	f = cloneFormula(f)
	return &f, nil
}

func (s *Store) ListFormulas(_ context.Context) ([]catalog.Formula, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.formulas.list()
	for i := range out {
		out[i] = cloneFormula(out[i])
	}
	return out, nil
}

func (s *Store) SaveFormula(_ context.Context, f catalog.Formula) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formulas.put(f.ID, cloneFormula(f))
	return nil
}

func (s *Store) DeleteFormula(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formulas.delete(id)
	return nil
}

// =============================================================================
// CLIENTS (catalog.ClientStore)
// =============================================================================

func (s *Store) GetClient(_ context.Context, id string) (*catalog.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients.get(id)
	if !ok {
		return nil, catalog.ErrClientNotFound
	}
	return &c, nil
}

func (s *Store) ListClients(_ context.Context) ([]catalog.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients.list(), nil
}

func (s *Store) SaveClient(_ context.Context, c catalog.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients.put(c.ID, c)
	return nil
}

func (s *Store) DeleteClient(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients.delete(id)
	return nil
}

// =============================================================================
// BATCHES (production.BatchStore)
// =============================================================================

func (s *Store) GetBatch(_ context.Context, id string) (*production.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.batches.get(id)
	if !ok {
		return nil, production.ErrBatchNotFound
	}
	b = cloneBatch(b)
	return &b, nil
}

func (s *Store) ListBatches(_ context.Context) ([]production.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.batches.list()
	for i := range out {
		out[i] = cloneBatch(out[i])
	}
	return out, nil
}

func (s *Store) SaveBatch(_ context.Context, b production.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches.put(b.ID, cloneBatch(b))
	return nil
}

func (s *Store) DeleteBatch(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches.delete(id)
	return nil
}

// =============================================================================
// TRANSACTIONS (production.TxStore)
// =============================================================================

// WithTx executes fn with snapshot/rollback semantics: if fn returns an
// error, every write it made is undone.
func (s *Store) WithTx(_ context.Context, fn func(production.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	materials := s.materials.snapshot(cloneMaterial)
	batches := s.batches.snapshot(cloneBatch)
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.materials = materials
		s.batches = batches
		s.mu.Unlock()
		return err
	}
	return nil
}

// =============================================================================
// CLONES - keep stored state isolated from caller mutation
// =============================================================================

func cloneMaterial(m inventory.Material) inventory.Material {
	m.Certifications = append([]string(nil), m.Certifications...)
	if m.ExpiryDate != nil {
		t := *m.ExpiryDate
		m.ExpiryDate = &t
	}
	return m
}

func cloneFormula(f catalog.Formula) catalog.Formula {
	f.Ingredients = append([]catalog.Ingredient(nil), f.Ingredients...)
	f.Steps = append([]catalog.ProductionStep(nil), f.Steps...)
	f.Phases = append([]string(nil), f.Phases...)
	return f
}

func cloneBatch(b production.Batch) production.Batch {
	b.Ingredients = append([]production.BatchIngredient(nil), b.Ingredients...)
	if b.PlannedDate != nil {
		t := *b.PlannedDate
		b.PlannedDate = &t
	}
	if b.StartedAt != nil {
		t := *b.StartedAt
		b.StartedAt = &t
	}
	if b.CompletedAt != nil {
		t := *b.CompletedAt
		b.CompletedAt = &t
	}
	return b
}
