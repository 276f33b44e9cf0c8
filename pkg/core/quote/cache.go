package quote

import (
	"context"
	"encoding/json"
	"sync"

	"gridquote/pkg/models"
)

// Cache memoizes finished quotes by input fingerprint. Entries are pure
// derived data: anything may evict or lose them at any time and the
// engine recomputes identically, so a cache is never a source of truth.
type Cache interface {
	Get(ctx context.Context, key string) (*models.AuthenticatedQuote, bool)
	Set(ctx context.Context, key string, q *models.AuthenticatedQuote)
}

// MemoryCache is the in-process implementation. A Redis-backed one
// lives in pkg/core/store for deployments that share a cache across
// replicas.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*models.AuthenticatedQuote
}

// NewMemoryCache returns an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*models.AuthenticatedQuote)}
}

// Get returns the cached quote for a fingerprint, if any. Callers get
// a private copy: mutating the result must never reach the memoized
// entry other callers will be handed.
func (c *MemoryCache) Get(_ context.Context, key string) (*models.AuthenticatedQuote, bool) {
	c.mu.RLock()
	q, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	cp, err := cloneQuote(q)
	if err != nil {
		return nil, false
	}
	return cp, true
}

// cloneQuote deep-copies a quote through its JSON form. Every model
// type survives a JSON round-trip unchanged, so the copy is exact.
func cloneQuote(q *models.AuthenticatedQuote) (*models.AuthenticatedQuote, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	var cp models.AuthenticatedQuote
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// Set stores a finished quote under its fingerprint.
func (c *MemoryCache) Set(_ context.Context, key string, q *models.AuthenticatedQuote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = q
}

// Len reports the number of memoized quotes.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// nopCache disables memoization.
type nopCache struct{}

func (nopCache) Get(context.Context, string) (*models.AuthenticatedQuote, bool) { return nil, false }
func (nopCache) Set(context.Context, string, *models.AuthenticatedQuote)       {}
