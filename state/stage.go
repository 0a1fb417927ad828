// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"

	"github.com/vechain/nfthub/kv"
)

// Stage abstracts changes on contract storage.
type Stage struct {
	changes map[storageKey][]byte
}

// Len returns count of changed keys.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes into the store atomically.
func (s *Stage) Commit(store kv.Store) error {
	bulk := StoreBucket.NewStore(store).Bulk()
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = bulk.Delete(dbKey(k))
		} else {
			err = bulk.Put(dbKey(k), v)
		}
		if err != nil {
			return errors.Wrap(err, "stage")
		}
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "commit state")
	}
	metricStorageOps().AddWithLabel(int64(len(s.changes)), map[string]string{"op": "write"})
	return nil
}
