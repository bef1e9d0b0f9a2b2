// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import "github.com/GildCoinDev/gild-crypto/gild"

// Bytes32 is a wrapper for storage and retrieval of a single [32]byte slot.
type Bytes32 struct {
	context *Context
	pos     gild.Bytes32
}

func NewBytes32(context *Context, pos gild.Bytes32) *Bytes32 {
	return &Bytes32{context: context, pos: pos}
}

func (b *Bytes32) Get() (gild.Bytes32, error) {
	b.context.UseBudget(gild.BudgetReadUnits)
	return b.context.state.GetStorage(b.context.address, b.pos)
}

func (b *Bytes32) Set(bytes *gild.Bytes32) {
	b.context.UseBudget(gild.BudgetWriteUpdateUnits)
	if bytes == nil {
		bytes = &gild.Bytes32{}
	}
	b.context.state.SetStorage(b.context.address, b.pos, *bytes)
}
