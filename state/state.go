// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/GildCoinDev/gild-crypto/cache"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/kv"
	"github.com/GildCoinDev/gild-crypto/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// storageKey identifies a storage slot of a module.
type storageKey struct {
	addr gild.Address
	key  gild.Bytes32
}

// State manages the ledger state.
//
// All reads and writes are journaled until staged and committed, so a
// checkpoint taken with NewCheckpoint can unwind every change made
// after it. A missing slot reads as an empty raw value.
type State struct {
	store kv.Store
	cache *cache.LRU
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New creates a state instance over the persisted slots in store.
// The cache is shared between instances created by the same stater.
func New(store kv.Store, cache *cache.LRU) *State {
	state := State{
		store: store,
		cache: cache,
	}

	state.sm = stackedmap.New(state.loadStorage)
	// base journal level, writes before any checkpoint land here
	state.sm.Push()
	return &state
}

// loadStorage implements stackedmap.MapGetter.
func (s *State) loadStorage(k storageKey) (rlp.RawValue, bool, error) {
	v, err := s.cache.GetOrLoad(k, func(any) (any, error) {
		data, err := s.store.Get(slotKey(k.addr, k.key))
		if err != nil {
			if s.store.IsNotFound(err) {
				return rlp.RawValue(nil), nil
			}
			return nil, err
		}
		return rlp.RawValue(data), nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(rlp.RawValue), true, nil
}

// GetStorage returns the storage value for the given address and key.
func (s *State) GetStorage(addr gild.Address, key gild.Bytes32) (gild.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return gild.Bytes32{}, err
	}
	if len(raw) == 0 {
		return gild.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return gild.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be a customized storage value
		// return hash of raw data
		return gild.Blake2b(raw), nil
	}
	return gild.BytesToBytes32(content), nil
}

// SetStorage sets the storage value for the given address and key.
func (s *State) SetStorage(addr gild.Address, key, value gild.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns the storage value in rlp raw for the given address and key.
func (s *State) GetRawStorage(addr gild.Address, key gild.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	metricSlotCounter().AddWithLabel(1, map[string]string{"type": "read"})
	return data, nil
}

// SetRawStorage sets the storage value in rlp raw.
func (s *State) SetRawStorage(addr gild.Address, key gild.Bytes32, raw rlp.RawValue) {
	metricSlotCounter().AddWithLabel(1, map[string]string{"type": "write"})
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage sets the storage value encoded by the given enc method.
// Errors returned by enc are wrapped as state errors.
func (s *State) EncodeStorage(addr gild.Address, key gild.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage gets and decodes the storage value.
// The decoder receives an empty raw value when the slot is unset.
// Errors returned by dec are wrapped as state errors.
func (s *State) DecodeStorage(addr gild.Address, key gild.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of the current state.
// It returns the revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to the checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects all journaled changes into a stage object ready to be
// committed in a single batch.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		changes[k] = v
		return true
	})
	return &Stage{
		store:   s.store,
		cache:   s.cache,
		changes: changes,
	}
}
