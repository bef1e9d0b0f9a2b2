// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"

	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/slot"
)

// Params key/value store of governance-tunable settings.
type Params struct {
	ctx *slot.Context
}

func New(ctx *slot.Context) *Params {
	return &Params{ctx}
}

// Get reads the value stored under key. Missing keys read as zero.
func (p *Params) Get(key gild.Bytes32) (*big.Int, error) {
	return slot.NewUint256(p.ctx, key).Get()
}

// Set stores value under key.
func (p *Params) Set(key gild.Bytes32, value *big.Int) {
	slot.NewUint256(p.ctx, key).Set(value)
}

// Paused reports whether the pause switch is on.
func (p *Params) Paused() (bool, error) {
	switches, err := p.Get(gild.KeySwitches)
	if err != nil {
		return false, err
	}
	return new(big.Int).And(switches, gild.SwitchPaused).Sign() != 0, nil
}

// SetPaused flips the pause switch, leaving the other bits untouched.
func (p *Params) SetPaused(on bool) error {
	switches, err := p.Get(gild.KeySwitches)
	if err != nil {
		return err
	}
	if on {
		switches.Or(switches, gild.SwitchPaused)
	} else {
		switches.AndNot(switches, gild.SwitchPaused)
	}
	p.Set(gild.KeySwitches, switches)
	return nil
}
