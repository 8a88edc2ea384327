package company

import (
	"context"
	"sync"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"golang.org/x/sync/singleflight"
)

// CachedSource keeps lookups in memory for a TTL and collapses concurrent
// lookups of the same company into one call to the underlying source.
// Unknown companies are cached too; errors are not.
type CachedSource struct {
	source Source
	ttl    time.Duration
	group  singleflight.Group

	mu    sync.RWMutex
	cache map[string]*cacheEntry
	now   func() time.Time
}

type cacheEntry struct {
	intel     *models.CompanyIntel
	expiresAt time.Time
}

func NewCachedSource(source Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		ttl:    ttl,
		cache:  make(map[string]*cacheEntry),
		now:    time.Now,
	}
}

func (cs *CachedSource) Lookup(ctx context.Context, name string) (*models.CompanyIntel, error) {
	key := NormalizeName(name)
	if intel, ok := cs.get(key); ok {
		return copyIntel(intel), nil
	}

	// the shared call outlives any single caller; each caller still stops
	// waiting when its own context ends
	ch := cs.group.DoChan(key, func() (interface{}, error) {
		intel, err := cs.source.Lookup(context.WithoutCancel(ctx), name)
		if err != nil {
			return nil, err
		}
		cs.set(key, intel)
		return intel, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return copyIntel(res.Val.(*models.CompanyIntel)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (cs *CachedSource) get(key string) (*models.CompanyIntel, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	entry, exists := cs.cache[key]
	if !exists || cs.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.intel, true
}

func (cs *CachedSource) set(key string, intel *models.CompanyIntel) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.cache[key] = &cacheEntry{intel: intel, expiresAt: cs.now().Add(cs.ttl)}
}

// Purge drops expired entries and returns how many were removed.
func (cs *CachedSource) Purge() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := cs.now()
	removed := 0
	for key, entry := range cs.cache {
		if now.After(entry.expiresAt) {
			delete(cs.cache, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of cached entries, expired or not.
func (cs *CachedSource) Size() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return len(cs.cache)
}

func copyIntel(intel *models.CompanyIntel) *models.CompanyIntel {
	if intel == nil {
		return nil
	}
	out := intel.Clone()
	return &out
}
