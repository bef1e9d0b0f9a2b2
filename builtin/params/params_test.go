// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/kv"
	"github.com/GildCoinDev/gild-crypto/meter"
	"github.com/GildCoinDev/gild-crypto/slot"
	"github.com/GildCoinDev/gild-crypto/state"
)

func newTestParams() *Params {
	store, _ := kv.NewMem()
	st := state.NewStater(store).NewState()
	m := meter.NewUnlimited()
	return New(slot.NewContext(gild.BytesToAddress([]byte("par")), st, m.Use))
}

func TestParamsGetSet(t *testing.T) {
	p := newTestParams()

	setv := big.NewInt(10)
	key := gild.BytesToBytes32([]byte("key"))
	p.Set(key, setv)

	getv, err := p.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, setv, getv)
}

func TestParamsMissingKeyReadsZero(t *testing.T) {
	p := newTestParams()

	v, err := p.Get(gild.KeyRewardRate)
	assert.NoError(t, err)
	assert.Zero(t, v.Sign())
}

func TestPauseSwitch(t *testing.T) {
	p := newTestParams()

	paused, err := p.Paused()
	assert.NoError(t, err)
	assert.False(t, paused)

	assert.NoError(t, p.SetPaused(true))
	paused, err = p.Paused()
	assert.NoError(t, err)
	assert.True(t, paused)

	assert.NoError(t, p.SetPaused(false))
	paused, err = p.Paused()
	assert.NoError(t, err)
	assert.False(t, paused)
}

func TestPauseSwitchPreservesOtherBits(t *testing.T) {
	p := newTestParams()

	// seed a foreign bit next to the pause bit
	p.Set(gild.KeySwitches, big.NewInt(4))

	assert.NoError(t, p.SetPaused(true))
	switches, err := p.Get(gild.KeySwitches)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(5), switches)

	assert.NoError(t, p.SetPaused(false))
	switches, err = p.Get(gild.KeySwitches)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(4), switches)
}
