// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/GildCoinDev/gild-crypto/cache"
	"github.com/GildCoinDev/gild-crypto/kv"
)

const slotCacheSize = 65536

// Stater is the state creator. State instances created by the same
// stater share one read cache.
type Stater struct {
	store kv.Store
	cache *cache.LRU
}

// NewStater creates a stater object over the given store.
func NewStater(store kv.Store) *Stater {
	c, _ := cache.NewLRU(slotCacheSize)
	return &Stater{
		store: store,
		cache: c,
	}
}

// NewState creates a state object on top of the persisted slots.
func (s *Stater) NewState() *State {
	return New(s.store, s.cache)
}
