// Copyright (c) 2024 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/qianbin/directcache"

	"github.com/GildCoinDev/gild-crypto/cache"
	"github.com/GildCoinDev/gild-crypto/log"
)

var logger = log.WithContext("pkg", "kv")

// cachedStore wraps a source store with a directcache based read cache.
// Values are cached on read miss and on plain puts; bulk writes only
// invalidate, so a non-atomic bulk never serves unwritten data.
type cachedStore struct {
	src         Store
	cache       *directcache.Cache
	stats       cache.Stats
	lastLogTime atomic.Int64
}

// NewCached creates a read-caching layer over the source store.
// sizeMB <= 0 disables caching and returns the source untouched.
func NewCached(src Store, sizeMB int) Store {
	if sizeMB <= 0 {
		return src
	}
	c := &cachedStore{
		src:   src,
		cache: directcache.New(sizeMB * 1024 * 1024),
	}
	c.lastLogTime.Store(time.Now().UnixNano())
	return c
}

func (c *cachedStore) Get(key []byte) ([]byte, error) {
	var val []byte
	if c.cache.AdvGet(key, func(v []byte) {
		val = slices.Clone(v)
	}, false) {
		if c.stats.Hit()%2000 == 0 {
			c.log()
		}
		return val, nil
	}
	c.stats.Miss()

	val, err := c.src.Get(key)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(key, val)
	return val, nil
}

func (c *cachedStore) Has(key []byte) (bool, error) {
	if c.cache.AdvGet(key, func([]byte) {}, true) {
		c.stats.Hit()
		return true, nil
	}
	c.stats.Miss()
	return c.src.Has(key)
}

func (c *cachedStore) IsNotFound(err error) bool {
	return c.src.IsNotFound(err)
}

func (c *cachedStore) Put(key, val []byte) error {
	if err := c.src.Put(key, val); err != nil {
		return err
	}
	_ = c.cache.Set(key, val)
	return nil
}

func (c *cachedStore) Delete(key []byte) error {
	if err := c.src.Delete(key); err != nil {
		return err
	}
	c.cache.Del(key)
	return nil
}

// Snapshot bypasses the cache, so the snapshot never observes writes
// that landed after its creation.
func (c *cachedStore) Snapshot() Snapshot {
	return c.src.Snapshot()
}

func (c *cachedStore) Bulk() Bulk {
	bulk := c.src.Bulk()
	return &struct {
		Putter
		EnableAutoFlushFunc
		WriteFunc
	}{
		&struct {
			PutFunc
			DeleteFunc
		}{
			func(key, val []byte) error {
				c.cache.Del(key)
				return bulk.Put(key, val)
			},
			func(key []byte) error {
				c.cache.Del(key)
				return bulk.Delete(key)
			},
		},
		bulk.EnableAutoFlush,
		bulk.Write,
	}
}

func (c *cachedStore) Iterate(r Range) Iterator {
	return c.src.Iterate(r)
}

func (c *cachedStore) log() {
	now := time.Now().UnixNano()
	last := c.lastLogTime.Swap(now)

	if now-last > int64(time.Second*20) {
		if should, hit, miss := c.stats.Stats(); should {
			lookups := hit + miss
			logger.Info("read cache stats",
				"lookups", lookups,
				"hitrate", fmt.Sprintf("%.3f", float64(hit)/float64(lookups)),
			)
		}
	} else {
		c.lastLogTime.CompareAndSwap(now, last)
	}
}
