// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/GildCoinDev/gild-crypto/gild"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for modules, similar to a
// mapping in a contract. Each entry lives at Blake2b(key, basePos) under
// the module address. Reads and writes charge the context's budget by
// word count; storing the zero value clears the entry for free.
type Mapping[K Key, V any] struct {
	context *Context
	basePos gild.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos gild.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

// Get returns the value stored for key, or the zero value of V when unset.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	position := gild.Blake2b(key.Bytes(), m.basePos.Bytes())
	err = m.context.state.DecodeStorage(m.context.address, position, func(raw []byte) error {
		m.context.UseBudget(wordSize(len(raw)) * gild.BudgetReadUnits)
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Insert stores the value for key, priced as a fresh slot.
func (m *Mapping[K, V]) Insert(key K, value V) error {
	return m.set(key, value, true)
}

// Update stores the value for key, priced as an existing slot.
func (m *Mapping[K, V]) Update(key K, value V) error {
	return m.set(key, value, false)
}

func (m *Mapping[K, V]) set(key K, value V, newValue bool) error {
	position := gild.Blake2b(key.Bytes(), m.basePos.Bytes())
	return m.context.state.EncodeStorage(m.context.address, position, func() ([]byte, error) {
		if reflect.ValueOf(&value).Elem().IsZero() {
			return nil, nil
		}
		val, err := rlp.EncodeToBytes(value)
		if err != nil {
			return nil, err
		}
		if newValue {
			m.context.UseBudget(wordSize(len(val)) * gild.BudgetWriteNewUnits)
		} else {
			m.context.UseBudget(wordSize(len(val)) * gild.BudgetWriteUpdateUnits)
		}
		return val, nil
	})
}
