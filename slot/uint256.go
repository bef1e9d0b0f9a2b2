// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"math/big"

	"github.com/GildCoinDev/gild-crypto/gild"
)

// Uint256 is a wrapper for storage and retrieval of an uint256, similar to
// a single numeric slot of a contract. Values beyond 256 bits are truncated
// to fit gild.Bytes32. Reads and writes charge the context's budget at the
// flat slot prices.
type Uint256 struct {
	context *Context
	pos     gild.Bytes32
}

func NewUint256(context *Context, pos gild.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (value *big.Int, err error) {
	u.context.UseBudget(gild.BudgetReadUnits)
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

func (u *Uint256) Set(value *big.Int) {
	u.context.UseBudget(gild.BudgetWriteUpdateUnits)
	storage := gild.BytesToBytes32(value.Bytes())
	u.context.state.SetStorage(u.context.address, u.pos, storage)
}

func (u *Uint256) Add(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	storage.Add(storage, value)
	u.Set(storage)
	return nil
}

func (u *Uint256) Sub(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	storage.Sub(storage, value)
	u.Set(storage)
	return nil
}
