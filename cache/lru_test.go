// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUGetOrLoad(t *testing.T) {
	_, err := NewLRU("test", 0)
	assert.Error(t, err)

	c, err := NewLRU("test", 2)
	require.NoError(t, err)

	loads := 0
	loader := func(key any) (any, error) {
		loads++
		return key.(uint64) * 10, nil
	}

	for range 3 {
		v, err := c.GetOrLoad(uint64(1), loader)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), v)
	}
	assert.Equal(t, 1, loads)

	_, err = c.GetOrLoad(uint64(2), func(any) (any, error) { return nil, errors.New("boom") })
	assert.Error(t, err)
	assert.False(t, c.Contains(uint64(2)))

	hit, miss := c.Lookups()
	assert.Equal(t, int64(2), hit)
	assert.Equal(t, int64(2), miss)
}

func TestHitRateChanged(t *testing.T) {
	c, err := NewLRU("test", 2)
	require.NoError(t, err)

	load := func(any) (any, error) { return 1, nil }
	_, _ = c.GetOrLoad("a", load)
	_, _ = c.GetOrLoad("a", load)

	assert.True(t, c.HitRateChanged())
	assert.False(t, c.HitRateChanged())

	_, _ = c.GetOrLoad("a", load)
	assert.True(t, c.HitRateChanged())
}
