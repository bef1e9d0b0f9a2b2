// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/meter"
)

func TestUint64(t *testing.T) {
	m, ctx := newTestContext()
	u := NewUint64(ctx, gild.Bytes32{2})

	u.Set(1755000000)
	assert.Equal(t, gild.BudgetWriteUpdateUnits, m.Used())

	m = meter.NewUnlimited()
	ctx.meter = m.Use

	value, err := u.Get()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1755000000), value)
	assert.Equal(t, gild.BudgetReadUnits, m.Used())
}

func TestUint64Empty(t *testing.T) {
	_, ctx := newTestContext()
	u := NewUint64(ctx, gild.Bytes32{2})

	value, err := u.Get()
	assert.NoError(t, err)
	assert.Zero(t, value)
}

func TestUint64Extremes(t *testing.T) {
	_, ctx := newTestContext()
	u := NewUint64(ctx, gild.Bytes32{2})

	u.Set(math.MaxUint64)
	value, err := u.Get()
	assert.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), value)

	u.Set(0)
	value, err = u.Get()
	assert.NoError(t, err)
	assert.Zero(t, value)
}
