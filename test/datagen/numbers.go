// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"math/big"
	mathrand "math/rand/v2"

	"github.com/GildCoinDev/gild-crypto/gild"
)

func RandInt() int {
	return mathrand.Int() //#nosec G404
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}

// RandStake returns a random whole-token amount within
// [MinimumStake, MinimumStake*maxMultiple].
func RandStake(maxMultiple int) *big.Int {
	n := int64(mathrand.N(maxMultiple*32) + 32) //#nosec G404
	return new(big.Int).Mul(big.NewInt(n), gild.OneGild)
}
