// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/GildCoinDev/gild-crypto/builtin/vault"
	"github.com/GildCoinDev/gild-crypto/events"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/ledger"
)

// StakeRequest request body of stake-like operations. Amount accepts
// decimal or 0x-prefixed hex strings.
type StakeRequest struct {
	Caller gild.Address     `json:"caller"`
	Amount *math.Decimal256 `json:"amount"`
}

// CallerRequest request body of operations that only name the caller.
type CallerRequest struct {
	Caller gild.Address `json:"caller"`
}

// Event one event of an operation receipt.
type Event struct {
	Address gild.Address     `json:"address"`
	Name    string           `json:"name"`
	Account gild.Address     `json:"account"`
	Amount  *math.Decimal256 `json:"amount"`
	Data    string           `json:"data"`
}

// Receipt response body of a committed operation.
type Receipt struct {
	Events     []*Event `json:"events"`
	BudgetUsed uint64   `json:"budgetUsed"`
}

// Status response body of GET /ledger/status.
type Status struct {
	Network              string           `json:"network"`
	GenesisID            gild.Bytes32     `json:"genesisID"`
	TotalStaked          *math.Decimal256 `json:"totalStaked"`
	TotalSupply          *math.Decimal256 `json:"totalSupply"`
	PoolBalance          *math.Decimal256 `json:"poolBalance"`
	RewardRatePercent    *math.Decimal256 `json:"rewardRatePercent"`
	InflationRatePercent *math.Decimal256 `json:"inflationRatePercent"`
	LastInflationTime    uint64           `json:"lastInflationTime"`
	Paused               bool             `json:"paused"`
}

// Position response body of GET /ledger/positions/{address}.
type Position struct {
	Principal      *math.Decimal256 `json:"principal"`
	AccruedReward  *math.Decimal256 `json:"accruedReward"`
	PendingReward  *math.Decimal256 `json:"pendingReward"`
	BoostPercent   uint8            `json:"boostPercent"`
	LastSettlement uint64           `json:"lastSettlement"`
	LastStakeTime  uint64           `json:"lastStakeTime"`
	At             uint64           `json:"at"`
}

// Balance response body of GET /ledger/balances/{address}.
type Balance struct {
	Balance *math.Decimal256 `json:"balance"`
}

func decimal(x *big.Int) *math.Decimal256 {
	if x == nil {
		return nil
	}
	return (*math.Decimal256)(x)
}

func convertEvent(ev *events.Event) *Event {
	return &Event{
		Address: ev.Address,
		Name:    ev.Name,
		Account: ev.Account,
		Amount:  decimal(ev.Amount),
		Data:    hexutil.Encode(ev.Data),
	}
}

// ConvertReceipt converts an operation receipt into its API form.
func ConvertReceipt(receipt *ledger.Receipt) *Receipt {
	evs := make([]*Event, len(receipt.Events))
	for i, ev := range receipt.Events {
		evs[i] = convertEvent(ev)
	}
	return &Receipt{
		Events:     evs,
		BudgetUsed: receipt.BudgetUsed,
	}
}

func convertStatus(status *ledger.Status) *Status {
	return &Status{
		Network:              status.Network,
		GenesisID:            status.GenesisID,
		TotalStaked:          decimal(status.TotalStaked),
		TotalSupply:          decimal(status.TotalSupply),
		PoolBalance:          decimal(status.PoolBalance),
		RewardRatePercent:    decimal(status.RewardRatePercent),
		InflationRatePercent: decimal(status.InflationRatePercent),
		LastInflationTime:    status.LastInflationTime,
		Paused:               status.Paused,
	}
}

func convertPosition(pos *vault.Position, pending *big.Int, at uint64) *Position {
	return &Position{
		Principal:      decimal(pos.Principal),
		AccruedReward:  decimal(pos.AccruedReward),
		PendingReward:  decimal(pending),
		BoostPercent:   pos.BoostPercent,
		LastSettlement: pos.LastSettlement,
		LastStakeTime:  pos.LastStakeTime,
		At:             at,
	}
}
