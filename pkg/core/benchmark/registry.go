// Package benchmark is the single catalog of cited constants the engine
// reads. Every price, rate, density, and policy bound flows through a
// Registry value injected at call time, so there is exactly one place to
// update a number and every use of it is traceable to a source.
package benchmark

import (
	"fmt"
	"sort"
	"sync"

	"gridquote/pkg/models"
)

// Benchmark is one cited constant.
type Benchmark struct {
	ID          string  `json:"id"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	SourceID    string  `json:"sourceId"`
	SourceLabel string  `json:"sourceLabel"`
}

// Registry holds the benchmark catalog. It is a value passed into the
// engine, never a module-level singleton: callers construct one with
// NewRegistry, apply overrides, and inject it.
type Registry struct {
	entries map[string]Benchmark
	mu      sync.RWMutex
}

// NewRegistry returns a registry pre-loaded with the default catalog.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Benchmark)}
	for _, b := range defaultCatalog {
		r.entries[b.ID] = b
	}
	return r
}

// Lookup retrieves a benchmark by id.
func (r *Registry) Lookup(id string) (Benchmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if b, ok := r.entries[id]; ok {
		return b, nil
	}
	return Benchmark{}, fmt.Errorf("benchmark not found: %s", id)
}

// Value retrieves just the numeric value of a benchmark.
func (r *Registry) Value(id string) (float64, error) {
	b, err := r.Lookup(id)
	if err != nil {
		return 0, err
	}
	return b.Value, nil
}

// MustValue retrieves a value for ids that are part of the default
// catalog. It panics on a missing id, which indicates a programming
// error (a component asking for a constant that was never cataloged),
// not bad user input.
func (r *Registry) MustValue(id string) float64 {
	v, err := r.Value(id)
	if err != nil {
		panic(err)
	}
	return v
}

// Override replaces or adds a benchmark. Intended for callers tuning
// policy constants (tier bound ratio, discount rate) before injection.
func (r *Registry) Override(b Benchmark) error {
	if b.ID == "" {
		return fmt.Errorf("benchmark ID cannot be empty")
	}
	if b.SourceID == "" {
		return fmt.Errorf("benchmark %s must carry a source ID", b.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[b.ID] = b
	return nil
}

// List returns all benchmark ids in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of cataloged benchmarks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Record looks up a benchmark and appends its use to an audit trail
// under the given component name. Components should call this instead of
// hand-writing audit entries for registry constants.
func (r *Registry) Record(trail models.AuditTrail, component, id string) (float64, models.AuditTrail, error) {
	b, err := r.Lookup(id)
	if err != nil {
		return 0, trail, err
	}
	trail = trail.Add(component, b.Value, b.Unit, b.SourceID, b.SourceLabel)
	return b.Value, trail, nil
}
