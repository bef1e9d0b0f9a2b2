// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/GildCoinDev/gild-crypto/cache"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/kv"
)

// Stage abstracts the set of slot changes collected from a state
// instance, ready to be committed.
type Stage struct {
	store   kv.Store
	cache   *cache.LRU
	changes map[storageKey]rlp.RawValue
}

// Len returns the number of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash digests the staged changes in slot order. Two stages carrying
// the same writes hash identically regardless of journal order, which
// is what pins a genesis to its ID.
func (s *Stage) Hash() gild.Bytes32 {
	keys := make([]storageKey, 0, len(s.changes))
	for k := range s.changes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if cmp := bytes.Compare(keys[i].addr.Bytes(), keys[j].addr.Bytes()); cmp != 0 {
			return cmp < 0
		}
		return bytes.Compare(keys[i].key.Bytes(), keys[j].key.Bytes()) < 0
	})

	return gild.Blake2bFn(func(w io.Writer) {
		for _, k := range keys {
			w.Write(k.addr.Bytes())
			w.Write(k.key.Bytes())
			w.Write(s.changes[k])
		}
	})
}

// Commit writes all changes to the store in one batch. Slots set to an
// empty raw value are deleted. The shared read cache is refreshed only
// after the batch lands.
func (s *Stage) Commit() error {
	bulk := s.store.Bulk()
	for k, v := range s.changes {
		if len(v) == 0 {
			if err := bulk.Delete(slotKey(k.addr, k.key)); err != nil {
				return &Error{err}
			}
		} else {
			if err := bulk.Put(slotKey(k.addr, k.key), v); err != nil {
				return &Error{err}
			}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}

	for k, v := range s.changes {
		s.cache.Add(k, v)
	}
	metricSlotCounter().AddWithLabel(int64(len(s.changes)), map[string]string{"type": "commit"})
	return nil
}
