// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accrual computes staking rewards over elapsed time. The
// arithmetic is pure integer math; every division truncates, and the
// order of operations is part of the protocol.
package accrual

import (
	"math/big"

	"github.com/GildCoinDev/gild-crypto/gild"
)

var hundred = big.NewInt(100)

// Calc returns the reward earned by principal between lastSettlement
// and now at ratePercent APY, lifted by boostPercent:
//
//	base    = principal * rate * elapsed / (100 * SecondsPerYear)
//	boosted = base + base*boost/100
//
// A clock that did not advance, an empty principal or a zero rate all
// yield zero. Calc never fails and has no side effects.
func Calc(principal, ratePercent *big.Int, boostPercent uint8, lastSettlement, now uint64) *big.Int {
	if now <= lastSettlement {
		return new(big.Int)
	}
	if principal == nil || principal.Sign() <= 0 {
		return new(big.Int)
	}
	if ratePercent == nil || ratePercent.Sign() <= 0 {
		return new(big.Int)
	}

	elapsed := new(big.Int).SetUint64(now - lastSettlement)

	base := new(big.Int).Mul(principal, ratePercent)
	base.Mul(base, elapsed)
	base.Div(base, new(big.Int).Mul(hundred, new(big.Int).SetUint64(gild.SecondsPerYear)))

	if boostPercent == 0 {
		return base
	}

	lift := new(big.Int).Mul(base, big.NewInt(int64(boostPercent)))
	lift.Div(lift, hundred)
	return base.Add(base, lift)
}
