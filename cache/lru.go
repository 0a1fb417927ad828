// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/nfthub/metrics"
)

var metricCacheLookups = metrics.LazyLoadCounterVec("cache_lookup_count", []string{"cache", "result"})

// LRU is a named golang-lru cache that counts its lookups.
type LRU struct {
	*lru.Cache
	name       string
	hit, miss  atomic.Int64
	lastReport atomic.Int64
}

// NewLRU creates a cache holding at most maxSize entries.
// maxSize must be > 0.
func NewLRU(name string, maxSize int) (*LRU, error) {
	c, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU{Cache: c, name: name}, nil
}

// Loader loads the value of a missed key.
type Loader func(key any) (any, error)

// GetOrLoad returns the cached value of key, calling loader on a miss.
// Failed loads are not cached.
func (l *LRU) GetOrLoad(key any, loader Loader) (any, error) {
	if v, ok := l.Get(key); ok {
		l.hit.Add(1)
		metricCacheLookups().AddWithLabel(1, map[string]string{"cache": l.name, "result": "hit"})
		return v, nil
	}
	l.miss.Add(1)
	metricCacheLookups().AddWithLabel(1, map[string]string{"cache": l.name, "result": "miss"})

	v, err := loader(key)
	if err != nil {
		return nil, err
	}
	l.Add(key, v)
	return v, nil
}

// Lookups returns the hit and miss counts of GetOrLoad.
func (l *LRU) Lookups() (hit, miss int64) {
	return l.hit.Load(), l.miss.Load()
}

// HitRateChanged reports whether the hit rate, in permille, moved since the last call.
func (l *LRU) HitRateChanged() bool {
	hit, miss := l.Lookups()
	var permille int64
	if hit+miss > 0 {
		permille = hit * 1000 / (hit + miss)
	}
	return l.lastReport.Swap(permille) != permille
}
