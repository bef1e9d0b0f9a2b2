// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import "github.com/GildCoinDev/gild-crypto/gild"

// Address is a wrapper for storage and retrieval of a single address slot.
type Address struct {
	context *Context
	pos     gild.Bytes32
}

func NewAddress(context *Context, pos gild.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (gild.Address, error) {
	a.context.UseBudget(gild.BudgetReadUnits)
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return gild.Address{}, err
	}
	return gild.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(addr *gild.Address) {
	a.context.UseBudget(gild.BudgetWriteUpdateUnits)
	var storage gild.Bytes32
	if addr != nil {
		storage = gild.BytesToBytes32(addr.Bytes())
	}
	a.context.state.SetStorage(a.context.address, a.pos, storage)
}
