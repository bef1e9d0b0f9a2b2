// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gild

import "math/big"

// Constants of the staking ledger.
const (
	// UnbondingPeriod seconds a stake stays locked after the account's last stake action.
	UnbondingPeriod uint64 = 7 * 24 * 3600
	// InflationInterval cadence of the supply inflation schedule.
	InflationInterval uint64 = 365 * 24 * 3600
	// SecondsPerYear denominator of the reward accrual formula.
	SecondsPerYear uint64 = 365 * 24 * 3600

	// MaxBoostPercent upper bound of the per-account gold boost.
	MaxBoostPercent uint8 = 20

	// BudgetReadUnits cost charged per storage slot read.
	BudgetReadUnits uint64 = 200
	// BudgetWriteNewUnits cost charged when a storage slot goes from empty to set.
	BudgetWriteNewUnits uint64 = 20000
	// BudgetWriteUpdateUnits cost charged when a set storage slot is updated or cleared.
	BudgetWriteUpdateUnits uint64 = 5000
	// BudgetEventUnits cost charged per recorded event.
	BudgetEventUnits uint64 = 1125
)

// Amounts in base units.
var (
	// OneGild 1 GILD in base units.
	OneGild = big.NewInt(1e18)

	// MinimumStake floor of a single stake operation, 32 whole tokens.
	MinimumStake = new(big.Int).Mul(big.NewInt(32), OneGild)

	// MaxTotalSupply hard cap of the token supply, 100 million whole tokens.
	MaxTotalSupply = new(big.Int).Mul(big.NewInt(100e6), OneGild)
)

// Keys of governance params.
var (
	KeyRewardRate    = BytesToBytes32([]byte("reward-rate"))
	KeyInflationRate = BytesToBytes32([]byte("inflation-rate"))
	KeySwitches      = BytesToBytes32([]byte("switches"))

	// KeyGenesisID stamps a data dir with the identity of the genesis
	// that seeded it.
	KeyGenesisID = BytesToBytes32([]byte("genesis-id"))

	InitialRewardRatePercent    = big.NewInt(12)
	InitialInflationRatePercent = big.NewInt(2)

	// SwitchPaused bit of KeySwitches halting normal staking operations.
	// Emergency withdrawals require it set.
	SwitchPaused = big.NewInt(1)
)
