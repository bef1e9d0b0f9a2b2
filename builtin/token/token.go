// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/GildCoinDev/gild-crypto/builtin/reverts"
	"github.com/GildCoinDev/gild-crypto/events"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/slot"
)

var (
	slotTotalSupply = gild.Bytes32(crypto.Keccak256Hash([]byte("total-supply")))
	slotBalances    = gild.BytesToBytes32([]byte("balances"))
)

// Token is the fungible balance ledger of GILD. Mint and burn move
// tokens across the zero address; the hard supply cap is enforced on
// every mint.
type Token struct {
	supply   *slot.Uint256
	balances *slot.Mapping[gild.Address, *big.Int]
	recorder *events.Recorder
}

func New(ctx *slot.Context, recorder *events.Recorder) *Token {
	return &Token{
		supply:   slot.NewUint256(ctx, slotTotalSupply),
		balances: slot.NewMapping[gild.Address, *big.Int](ctx, slotBalances),
		recorder: recorder,
	}
}

// BalanceOf returns the balance of addr. Unset balances read as zero.
func (t *Token) BalanceOf(addr gild.Address) (*big.Int, error) {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	if bal == nil {
		return new(big.Int), nil
	}
	return bal, nil
}

// TotalSupply returns the current circulating supply.
func (t *Token) TotalSupply() (*big.Int, error) {
	supply, err := t.supply.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total supply")
	}
	return supply, nil
}

// setBalance clears the slot when the balance drops to zero, so empty
// accounts cost nothing.
func (t *Token) setBalance(addr gild.Address, balance *big.Int, isNew bool) error {
	if balance.Sign() == 0 {
		balance = nil
	}
	if isNew {
		return errors.Wrap(t.balances.Insert(addr, balance), "failed to insert balance")
	}
	return errors.Wrap(t.balances.Update(addr, balance), "failed to update balance")
}

// Transfer moves amount from sender to recipient. A zero amount is a
// no-op; nil or negative amounts are rejected.
func (t *Token) Transfer(sender, recipient gild.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	senderBal, err := t.BalanceOf(sender)
	if err != nil {
		return err
	}
	if senderBal.Cmp(amount) < 0 {
		return reverts.ErrInsufficientBalance
	}
	if err := t.setBalance(sender, new(big.Int).Sub(senderBal, amount), false); err != nil {
		return err
	}

	// read after the debit so a self transfer nets to zero
	recipientBal, err := t.BalanceOf(recipient)
	if err != nil {
		return err
	}
	if err := t.setBalance(recipient, new(big.Int).Add(recipientBal, amount), recipientBal.Sign() == 0); err != nil {
		return err
	}

	t.recorder.AddTransfer(&events.Transfer{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	})
	return nil
}

// Mint creates amount new tokens for recipient, bounded by the supply
// cap. The transfer log carries the zero address as sender.
func (t *Token) Mint(recipient gild.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	supply, err := t.TotalSupply()
	if err != nil {
		return err
	}
	newSupply := new(big.Int).Add(supply, amount)
	if newSupply.Cmp(gild.MaxTotalSupply) > 0 {
		return reverts.ErrSupplyCap
	}

	bal, err := t.BalanceOf(recipient)
	if err != nil {
		return err
	}
	if err := t.setBalance(recipient, new(big.Int).Add(bal, amount), bal.Sign() == 0); err != nil {
		return err
	}
	t.supply.Set(newSupply)

	t.recorder.AddTransfer(&events.Transfer{
		Recipient: recipient,
		Amount:    amount,
	})
	return nil
}

// Burn destroys amount tokens held by holder. The transfer log carries
// the zero address as recipient.
func (t *Token) Burn(holder gild.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	bal, err := t.BalanceOf(holder)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.ErrInsufficientBalance
	}
	supply, err := t.TotalSupply()
	if err != nil {
		return err
	}

	if err := t.setBalance(holder, new(big.Int).Sub(bal, amount), false); err != nil {
		return err
	}
	t.supply.Set(new(big.Int).Sub(supply, amount))

	t.recorder.AddTransfer(&events.Transfer{
		Sender: holder,
		Amount: amount,
	})
	return nil
}
