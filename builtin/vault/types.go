// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"
)

// Position is the staking record of one account. Created on first
// stake and never destroyed; zero principal and zero reward is the
// empty terminal state.
//
// LastStakeTime drives the unbonding clock and moves only on stake.
// LastSettlement moves on every settlement, so the two are distinct
// fields on purpose.
type Position struct {
	Principal      *big.Int
	LastSettlement uint64
	AccruedReward  *big.Int
	BoostPercent   uint8
	LastStakeTime  uint64
}

// IsEmpty reports whether the position carries no state worth keeping.
func (p *Position) IsEmpty() bool {
	return (p.Principal == nil || p.Principal.Sign() == 0) &&
		(p.AccruedReward == nil || p.AccruedReward.Sign() == 0) &&
		p.LastSettlement == 0 &&
		p.BoostPercent == 0 &&
		p.LastStakeTime == 0
}
