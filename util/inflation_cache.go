package util

import (
	"sync"
	"time"

	"github.com/fgiusti90/psico-app/model"
	cache "github.com/patrickmn/go-cache"
)

var (
	inflationMu    sync.RWMutex
	inflationCache *cache.Cache
)

// InitInflationCache sets up the per-practitioner inflation record cache.
// A ttl <= 0 leaves caching disabled.
func InitInflationCache(ttl time.Duration) {
	inflationMu.Lock()
	defer inflationMu.Unlock()
	if ttl <= 0 {
		inflationCache = nil
		return
	}
	inflationCache = cache.New(ttl, 2*ttl)
}

func inflationKey(ownerID string) string {
	return "inflation:" + ownerID
}

// InflationCacheGet returns a copy of the cached records of ownerID.
func InflationCacheGet(ownerID string) ([]model.InflationRecord, bool) {
	inflationMu.RLock()
	c := inflationCache
	inflationMu.RUnlock()
	if c == nil {
		return nil, false
	}
	v, ok := c.Get(inflationKey(ownerID))
	if !ok {
		return nil, false
	}
	records, ok := v.([]model.InflationRecord)
	if !ok {
		return nil, false
	}
	out := make([]model.InflationRecord, len(records))
	copy(out, records)
	return out, true
}

func InflationCacheSet(ownerID string, records []model.InflationRecord) {
	inflationMu.RLock()
	c := inflationCache
	inflationMu.RUnlock()
	if c == nil {
		return
	}
	stored := make([]model.InflationRecord, len(records))
	copy(stored, records)
	c.SetDefault(inflationKey(ownerID), stored)
}

// InflationCacheInvalidate drops the cached records of ownerID. Call it after
// every inflation write.
func InflationCacheInvalidate(ownerID string) {
	inflationMu.RLock()
	c := inflationCache
	inflationMu.RUnlock()
	if c == nil {
		return
	}
	c.Delete(inflationKey(ownerID))
}
