// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package inflation runs the annual supply schedule: once per elapsed
// interval, half of the scheduled issuance is minted into the staking
// pool to fund rewards and the other half is burned from it.
package inflation

import (
	"math/big"

	"github.com/GildCoinDev/gild-crypto/builtin/authority"
	"github.com/GildCoinDev/gild-crypto/builtin/params"
	"github.com/GildCoinDev/gild-crypto/builtin/reverts"
	"github.com/GildCoinDev/gild-crypto/builtin/token"
	"github.com/GildCoinDev/gild-crypto/events"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/slot"
)

// Event names emitted by the inflation scheduler.
const (
	EventInflationMinted  = "inflation_minted"
	EventTokensBurned     = "tokens_burned"
	EventInflationRateSet = "inflation_rate_set"
)

var slotLastTime = gild.BytesToBytes32([]byte("last-inflation-time"))

// Inflation mints and burns on the annual schedule.
type Inflation struct {
	addr     gild.Address
	pool     gild.Address
	lastTime *slot.Uint64
	token    *token.Token
	params   *params.Params
	auth     *authority.Authority
	recorder *events.Recorder
}

func New(ctx *slot.Context, pool gild.Address, token *token.Token, params *params.Params, auth *authority.Authority, recorder *events.Recorder) *Inflation {
	return &Inflation{
		addr:     ctx.Address(),
		pool:     pool,
		lastTime: slot.NewUint64(ctx, slotLastTime),
		token:    token,
		params:   params,
		auth:     auth,
		recorder: recorder,
	}
}

// Mint applies the inflation due since the last application. Calling
// before a full interval elapsed succeeds without effect, so callers
// can fire on any cadence. Multi-interval gaps apply every missed
// year's worth in one call; the sub-interval remainder is discarded
// because the timestamp resets to now.
func (i *Inflation) Mint(caller gild.Address, now uint64) error {
	ok, err := i.auth.IsGovernor(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNotAuthorized
	}

	last, err := i.lastTime.Get()
	if err != nil {
		return err
	}
	if now <= last {
		return nil
	}
	elapsed := now - last
	if elapsed < gild.InflationInterval {
		return nil
	}
	numYears := elapsed / gild.InflationInterval

	supply, err := i.token.TotalSupply()
	if err != nil {
		return err
	}
	rate, err := i.params.Get(gild.KeyInflationRate)
	if err != nil {
		return err
	}

	newTokens := new(big.Int).Mul(supply, rate)
	newTokens.Mul(newTokens, new(big.Int).SetUint64(numYears))
	newTokens.Div(newTokens, big.NewInt(100))

	toMint := new(big.Int).Div(newTokens, big.NewInt(2))
	toBurn := new(big.Int).Sub(newTokens, toMint)

	if err := i.token.Mint(i.pool, toMint); err != nil {
		return err
	}
	if err := i.token.Burn(i.pool, toBurn); err != nil {
		return err
	}
	i.lastTime.Set(now)

	i.recorder.AddEvent(&events.Event{
		Address: i.addr,
		Name:    EventInflationMinted,
		Account: i.pool,
		Amount:  toMint,
	})
	i.recorder.AddEvent(&events.Event{
		Address: i.addr,
		Name:    EventTokensBurned,
		Account: i.pool,
		Amount:  toBurn,
	})
	return nil
}

// SetRate updates the annual inflation percentage.
func (i *Inflation) SetRate(caller gild.Address, value *big.Int) error {
	ok, err := i.auth.IsGovernor(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNotAuthorized
	}
	if value == nil || value.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}

	i.params.Set(gild.KeyInflationRate, value)

	i.recorder.AddEvent(&events.Event{
		Address: i.addr,
		Name:    EventInflationRateSet,
		Amount:  value,
	})
	return nil
}

// LastTime returns the timestamp of the last applied inflation.
func (i *Inflation) LastTime() (uint64, error) {
	return i.lastTime.Get()
}

// SetLastTime pins the schedule's starting point. Genesis only.
func (i *Inflation) SetLastTime(ts uint64) {
	i.lastTime.Set(ts)
}
