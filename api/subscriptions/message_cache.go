// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// messageCache holds marshaled feed messages keyed by event sequence
// number, so an event fanned out to many subscribers is encoded once.
type messageCache struct {
	cache *lru.Cache
	mu    sync.RWMutex
}

func newMessageCache(cacheSize uint32) *messageCache {
	if cacheSize > 10_000 {
		cacheSize = 10_000
	}
	if cacheSize == 0 {
		cacheSize = 1
	}
	cache, err := lru.New(int(cacheSize))
	if err != nil {
		// lru.New only fails on a non-positive size
		panic(fmt.Errorf("create message cache: %v", err))
	}
	return &messageCache{
		cache: cache,
	}
}

// GetOrAdd returns the message for seq, generating and caching it on a
// miss. The second return value reports whether the message was newly
// generated.
func (mc *messageCache) GetOrAdd(seq uint64, generate func() ([]byte, error)) ([]byte, bool, error) {
	mc.mu.RLock()
	msg, ok := mc.cache.Get(seq)
	mc.mu.RUnlock()
	if ok {
		return msg.([]byte), false, nil
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()
	msg, ok = mc.cache.Get(seq)
	if ok {
		return msg.([]byte), false, nil
	}

	generated, err := generate()
	if err != nil {
		return nil, false, err
	}
	mc.cache.Add(seq, generated)
	return generated, true, nil
}

func (mc *messageCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.cache.Len()
}
