// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"github.com/pkg/errors"

	"github.com/vechain/nfthub/cache"
)

// CachedDirectory memoizes the validator list per block height.
// The set can only change between blocks, so the height is a sufficient key.
type CachedDirectory struct {
	cache *cache.LRU
}

func NewCachedDirectory(size int) (*CachedDirectory, error) {
	c, err := cache.NewLRU("validators", size)
	if err != nil {
		return nil, errors.Wrap(err, "validator cache")
	}
	return &CachedDirectory{cache: c}, nil
}

// At binds the cache to a height and source.
func (d *CachedDirectory) At(height uint64, src ValidatorDirectory) ValidatorDirectory {
	return &cachedAt{d, height, src}
}

type cachedAt struct {
	dir    *CachedDirectory
	height uint64
	src    ValidatorDirectory
}

func (c *cachedAt) ListValidators() ([]string, error) {
	v, err := c.dir.cache.GetOrLoad(c.height, func(any) (any, error) {
		return c.src.ListValidators()
	})
	if err != nil {
		return nil, err
	}
	if c.dir.cache.HitRateChanged() {
		hit, miss := c.dir.cache.Lookups()
		logger.Debug("validator cache", "hit", hit, "miss", miss)
	}
	// callers may reslice
	return append([]string(nil), v.([]string)...), nil
}
