// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package authority

import (
	"github.com/GildCoinDev/gild-crypto/builtin/reverts"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/slot"
)

var slotGovernor = gild.BytesToBytes32([]byte("governor"))

// Authority tracks the single governor account entitled to run
// governance operations.
type Authority struct {
	governor *slot.Address
}

func New(ctx *slot.Context) *Authority {
	return &Authority{
		governor: slot.NewAddress(ctx, slotGovernor),
	}
}

// Governor returns the current governor address.
func (a *Authority) Governor() (gild.Address, error) {
	return a.governor.Get()
}

// IsGovernor reports whether addr is the governor.
func (a *Authority) IsGovernor(addr gild.Address) (bool, error) {
	governor, err := a.governor.Get()
	if err != nil {
		return false, err
	}
	return governor == addr, nil
}

// SetGovernor installs addr unconditionally. Genesis only.
func (a *Authority) SetGovernor(addr gild.Address) {
	a.governor.Set(&addr)
}

// Handoff transfers governorship to next. Only the current governor
// may hand off.
func (a *Authority) Handoff(caller, next gild.Address) error {
	ok, err := a.IsGovernor(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNotAuthorized
	}
	a.governor.Set(&next)
	return nil
}
