// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/state"
)

type UseBudgetFunc func(units uint64)

// Context carries the storage location and budget meter of a module
// while its operations run.
type Context struct {
	address gild.Address
	state   *state.State
	meter   UseBudgetFunc
}

func NewContext(address gild.Address, state *state.State, meter UseBudgetFunc) *Context {
	return &Context{
		address: address,
		state:   state,
		meter:   meter,
	}
}

func (c *Context) Address() gild.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) UseBudget(units uint64) {
	if c.meter != nil {
		c.meter(units)
	}
}
