// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"math/big"

	"github.com/GildCoinDev/gild-crypto/gild"
)

// Uint64 is a wrapper for storage and retrieval of a single uint64
// slot, stored right-aligned like any other numeric slot. Reads and
// writes charge the context's budget at the flat slot prices.
type Uint64 struct {
	context *Context
	pos     gild.Bytes32
}

func NewUint64(context *Context, pos gild.Bytes32) *Uint64 {
	return &Uint64{context: context, pos: pos}
}

func (u *Uint64) Get() (uint64, error) {
	u.context.UseBudget(gild.BudgetReadUnits)
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return 0, err
	}
	return new(big.Int).SetBytes(storage.Bytes()).Uint64(), nil
}

func (u *Uint64) Set(value uint64) {
	u.context.UseBudget(gild.BudgetWriteUpdateUnits)
	storage := gild.BytesToBytes32(new(big.Int).SetUint64(value).Bytes())
	u.context.state.SetStorage(u.context.address, u.pos, storage)
}
