// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

import (
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"

	"github.com/GildCoinDev/gild-crypto/gild"
)

func TestCalcOneYearNoBoost(t *testing.T) {
	// 100 units at 12% APY for exactly one year earn 12 units
	got := Calc(big.NewInt(100), big.NewInt(12), 0, 0, gild.SecondsPerYear)
	assert.Equal(t, big.NewInt(12), got)
}

func TestCalcOneYearWithBoost(t *testing.T) {
	// the 20% boost lifts the same year to 14 units
	got := Calc(big.NewInt(100), big.NewInt(12), 20, 0, gild.SecondsPerYear)
	assert.Equal(t, big.NewInt(14), got)
}

func TestCalcZeroCases(t *testing.T) {
	tests := []struct {
		name      string
		principal *big.Int
		rate      *big.Int
		boost     uint8
		last, now uint64
	}{
		{"clock did not advance", big.NewInt(100), big.NewInt(12), 0, 1000, 1000},
		{"clock behind settlement", big.NewInt(100), big.NewInt(12), 0, 1000, 999},
		{"nil principal", nil, big.NewInt(12), 0, 0, gild.SecondsPerYear},
		{"zero principal", new(big.Int), big.NewInt(12), 0, 0, gild.SecondsPerYear},
		{"nil rate", big.NewInt(100), nil, 0, 0, gild.SecondsPerYear},
		{"zero rate", big.NewInt(100), new(big.Int), 20, 0, gild.SecondsPerYear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calc(tt.principal, tt.rate, tt.boost, tt.last, tt.now)
			assert.Zero(t, got.Sign())
		})
	}
}

func TestCalcTruncation(t *testing.T) {
	// 1 unit at 12% for one second: 1*12*1/(100*31536000) truncates to 0
	got := Calc(big.NewInt(1), big.NewInt(12), 0, 0, 1)
	assert.Zero(t, got.Sign())

	// boost truncates independently of the base:
	// base = 10, lift = 10*15/100 = 1 (truncated from 1.5)
	principal := new(big.Int).Mul(big.NewInt(10), new(big.Int).SetUint64(gild.SecondsPerYear))
	got = Calc(principal, big.NewInt(100), 15, 0, 1)
	assert.Equal(t, big.NewInt(11), got)
}

func TestCalcExactFormula(t *testing.T) {
	// delta == floor(floor(P*R*E/(100*SecondsPerYear)) * (100+B)/100)
	reference := func(p, r *big.Int, b uint8, e uint64) *big.Int {
		base := new(big.Int).Mul(p, r)
		base.Mul(base, new(big.Int).SetUint64(e))
		base.Div(base, new(big.Int).Mul(big.NewInt(100), new(big.Int).SetUint64(gild.SecondsPerYear)))
		out := new(big.Int).Mul(base, big.NewInt(int64(100+uint64(b))))
		return out.Div(out, big.NewInt(100))
	}

	f := fuzz.New().NumElements(1, 1)
	for i := 0; i < 500; i++ {
		var principal, rate uint64
		var elapsed uint32
		var boost uint8
		f.Fuzz(&principal)
		f.Fuzz(&rate)
		f.Fuzz(&elapsed)
		f.Fuzz(&boost)

		p := new(big.Int).SetUint64(principal)
		r := new(big.Int).SetUint64(rate % 1000)
		b := boost % (gild.MaxBoostPercent + 1)
		e := uint64(elapsed)

		got := Calc(p, r, b, 0, e)
		want := reference(p, r, b, e)
		assert.Equal(t, want, got,
			"principal=%v rate=%v boost=%d elapsed=%d", p, r, b, e)
	}
}

func TestCalcDoesNotMutateInputs(t *testing.T) {
	principal := big.NewInt(1000)
	rate := big.NewInt(12)

	Calc(principal, rate, 20, 0, gild.SecondsPerYear)

	assert.Equal(t, big.NewInt(1000), principal)
	assert.Equal(t, big.NewInt(12), rate)
}
