// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vault is the staking engine. It keeps one position per
// account, settles rewards lazily against elapsed time, and moves
// tokens between the staking pool and the accounts it serves.
//
// The engine assumes it runs under the operation guard: pause gating,
// reentrancy exclusion and atomicity are the guard's business, not
// handled here.
package vault

import (
	"math/big"

	"github.com/GildCoinDev/gild-crypto/builtin/authority"
	"github.com/GildCoinDev/gild-crypto/builtin/params"
	"github.com/GildCoinDev/gild-crypto/builtin/reverts"
	"github.com/GildCoinDev/gild-crypto/builtin/token"
	"github.com/GildCoinDev/gild-crypto/builtin/vault/accrual"
	"github.com/GildCoinDev/gild-crypto/events"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/slot"
)

// Event names emitted by the staking engine.
const (
	EventStaked              = "staked"
	EventUnstaked            = "unstaked"
	EventRewardClaimed       = "reward_claimed"
	EventEmergencyWithdrawal = "emergency_withdrawal"
	EventBoostSet            = "boost_set"
	EventRewardRateSet       = "reward_rate_set"
)

// Vault mutates staking positions. Its own address doubles as the
// pool account holding every staked token.
type Vault struct {
	addr     gild.Address
	storage  *storage
	token    *token.Token
	params   *params.Params
	auth     *authority.Authority
	recorder *events.Recorder
}

func New(ctx *slot.Context, token *token.Token, params *params.Params, auth *authority.Authority, recorder *events.Recorder) *Vault {
	return &Vault{
		addr:     ctx.Address(),
		storage:  newStorage(ctx),
		token:    token,
		params:   params,
		auth:     auth,
		recorder: recorder,
	}
}

// settle folds the reward earned since the last settlement into the
// position. Runs before any principal mutation so no interval is
// counted twice or skipped.
func (v *Vault) settle(pos *Position, now uint64) error {
	rate, err := v.params.Get(gild.KeyRewardRate)
	if err != nil {
		return err
	}
	delta := accrual.Calc(pos.Principal, rate, pos.BoostPercent, pos.LastSettlement, now)
	pos.AccruedReward.Add(pos.AccruedReward, delta)
	pos.LastSettlement = now
	return nil
}

// Stake locks amount of the caller's tokens into the pool. The
// unbonding clock restarts on every stake.
func (v *Vault) Stake(caller gild.Address, amount *big.Int, now uint64) error {
	if amount == nil {
		return reverts.ErrInvalidAmount
	}
	if amount.Cmp(gild.MinimumStake) < 0 {
		return reverts.ErrBelowMinimumStake
	}

	if err := v.token.Transfer(caller, v.addr, amount); err != nil {
		return err
	}

	pos, existed, err := v.storage.getPosition(caller)
	if err != nil {
		return err
	}
	if err := v.settle(pos, now); err != nil {
		return err
	}

	pos.Principal.Add(pos.Principal, amount)
	pos.LastStakeTime = now
	if err := v.storage.savePosition(caller, pos, !existed); err != nil {
		return err
	}
	if err := v.storage.addTotalStaked(amount); err != nil {
		return err
	}

	v.recorder.AddEvent(&events.Event{
		Address: v.addr,
		Name:    EventStaked,
		Account: caller,
		Amount:  amount,
	})
	return nil
}

// Unstake releases amount of principal back to the caller once the
// unbonding period since the last stake has fully elapsed.
func (v *Vault) Unstake(caller gild.Address, amount *big.Int, now uint64) error {
	if amount == nil || amount.Sign() <= 0 {
		return reverts.ErrInvalidAmount
	}

	pos, _, err := v.storage.getPosition(caller)
	if err != nil {
		return err
	}
	if amount.Cmp(pos.Principal) > 0 {
		return reverts.ErrInvalidAmount
	}
	if now < pos.LastStakeTime+gild.UnbondingPeriod {
		return reverts.ErrUnbondingNotElapsed
	}

	if err := v.settle(pos, now); err != nil {
		return err
	}

	pos.Principal.Sub(pos.Principal, amount)
	if err := v.storage.savePosition(caller, pos, false); err != nil {
		return err
	}
	if err := v.storage.subTotalStaked(amount); err != nil {
		return err
	}

	if err := v.token.Transfer(v.addr, caller, amount); err != nil {
		return err
	}

	v.recorder.AddEvent(&events.Event{
		Address: v.addr,
		Name:    EventUnstaked,
		Account: caller,
		Amount:  amount,
	})
	return nil
}

// Claim settles and pays out the accrued reward. Claiming with
// nothing accrued succeeds without effect, so retries are safe.
func (v *Vault) Claim(caller gild.Address, now uint64) error {
	pos, existed, err := v.storage.getPosition(caller)
	if err != nil {
		return err
	}
	if err := v.settle(pos, now); err != nil {
		return err
	}

	payout := pos.AccruedReward
	if payout.Sign() > 0 {
		pos.AccruedReward = new(big.Int)
	}
	// an account that never staked gains no record from claiming
	if existed {
		if err := v.storage.savePosition(caller, pos, false); err != nil {
			return err
		}
	}
	if payout.Sign() == 0 {
		return nil
	}

	if err := v.token.Transfer(v.addr, caller, payout); err != nil {
		return err
	}

	v.recorder.AddEvent(&events.Event{
		Address: v.addr,
		Name:    EventRewardClaimed,
		Account: caller,
		Amount:  payout,
	})
	return nil
}

// EmergencyWithdraw pulls principal out while the system is paused,
// skipping both the unbonding clock and settlement. The accrued
// reward and settlement timestamp stay untouched, claimable after
// unpause.
func (v *Vault) EmergencyWithdraw(caller gild.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return reverts.ErrInvalidAmount
	}

	pos, _, err := v.storage.getPosition(caller)
	if err != nil {
		return err
	}
	if amount.Cmp(pos.Principal) > 0 {
		return reverts.ErrInvalidAmount
	}

	pos.Principal.Sub(pos.Principal, amount)
	if err := v.storage.savePosition(caller, pos, false); err != nil {
		return err
	}
	if err := v.storage.subTotalStaked(amount); err != nil {
		return err
	}

	if err := v.token.Transfer(v.addr, caller, amount); err != nil {
		return err
	}

	v.recorder.AddEvent(&events.Event{
		Address: v.addr,
		Name:    EventEmergencyWithdrawal,
		Account: caller,
		Amount:  amount,
	})
	return nil
}

// SetBoost grants account a gold boost percentage. The unsettled
// interval accrues at the new boost on its next settlement;
// already-settled rewards are never recomputed.
func (v *Vault) SetBoost(caller, account gild.Address, value uint8) error {
	ok, err := v.auth.IsGovernor(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNotAuthorized
	}
	if value > gild.MaxBoostPercent {
		return reverts.ErrBoostAboveCap
	}

	pos, existed, err := v.storage.getPosition(account)
	if err != nil {
		return err
	}
	pos.BoostPercent = value
	if err := v.storage.savePosition(account, pos, !existed); err != nil {
		return err
	}

	v.recorder.AddEvent(&events.Event{
		Address: v.addr,
		Name:    EventBoostSet,
		Account: account,
		Amount:  big.NewInt(int64(value)),
	})
	return nil
}

// SetRewardRate updates the APY percentage applied from the next
// settlement on.
func (v *Vault) SetRewardRate(caller gild.Address, value *big.Int) error {
	ok, err := v.auth.IsGovernor(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNotAuthorized
	}
	if value == nil || value.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}

	v.params.Set(gild.KeyRewardRate, value)

	v.recorder.AddEvent(&events.Event{
		Address: v.addr,
		Name:    EventRewardRateSet,
		Amount:  value,
	})
	return nil
}

// PositionOf returns the stored position of addr, empty when the
// account never staked.
func (v *Vault) PositionOf(addr gild.Address) (*Position, error) {
	pos, _, err := v.storage.getPosition(addr)
	return pos, err
}

// PendingReward projects the claimable reward of addr at the given
// time without mutating anything.
func (v *Vault) PendingReward(addr gild.Address, now uint64) (*big.Int, error) {
	pos, _, err := v.storage.getPosition(addr)
	if err != nil {
		return nil, err
	}
	rate, err := v.params.Get(gild.KeyRewardRate)
	if err != nil {
		return nil, err
	}
	delta := accrual.Calc(pos.Principal, rate, pos.BoostPercent, pos.LastSettlement, now)
	return delta.Add(delta, pos.AccruedReward), nil
}

// TotalStaked returns the sum of all principals.
func (v *Vault) TotalStaked() (*big.Int, error) {
	return v.storage.getTotalStaked()
}
