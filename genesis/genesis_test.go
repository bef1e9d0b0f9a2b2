// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GildCoinDev/gild-crypto/builtin"
	"github.com/GildCoinDev/gild-crypto/genesis"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/kv"
	"github.com/GildCoinDev/gild-crypto/state"
)

func TestDevAccounts(t *testing.T) {
	accs := genesis.DevAccounts()
	require.Len(t, accs, 10)

	seen := make(map[gild.Address]bool)
	for _, a := range accs {
		assert.False(t, a.Address.IsZero())
		assert.False(t, seen[a.Address], "dev account addresses must be distinct")
		seen[a.Address] = true
	}

	// derivation is cached and stable
	assert.Equal(t, accs[0].Address, genesis.DevAccounts()[0].Address)
}

func TestDevnetBuild(t *testing.T) {
	gene := genesis.NewDevnet()
	assert.Equal(t, "devnet", gene.Name())
	assert.False(t, gene.ID().IsZero())

	store, _ := kv.NewMem()
	defer store.Close()
	st := state.NewStater(store).NewState()
	require.NoError(t, gene.Build(st))
	require.NoError(t, st.Stage().Commit())

	use := func(uint64) {}
	token := builtin.Token.Bind(st, use, nil)

	wantBalance := new(big.Int).Mul(big.NewInt(1_000_000), gild.OneGild)
	for _, a := range genesis.DevAccounts() {
		bal, err := token.BalanceOf(a.Address)
		require.NoError(t, err)
		assert.Equal(t, wantBalance, bal)
	}

	supply, err := token.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Mul(wantBalance, big.NewInt(10)), supply)

	governor, err := builtin.Authority.Bind(st, use).Governor()
	require.NoError(t, err)
	assert.Equal(t, genesis.DevAccounts()[0].Address, governor)

	params := builtin.Params.Bind(st, use)
	rate, err := params.Get(gild.KeyRewardRate)
	require.NoError(t, err)
	assert.Equal(t, gild.InitialRewardRatePercent, rate)
	rate, err = params.Get(gild.KeyInflationRate)
	require.NoError(t, err)
	assert.Equal(t, gild.InitialInflationRatePercent, rate)

	auth := builtin.Authority.Bind(st, use)
	last, err := builtin.Inflation.Bind(st, use, token, params, auth, nil).LastTime()
	require.NoError(t, err)
	assert.Equal(t, gene.LaunchTime(), last)
}

func TestDevnetIDDeterministic(t *testing.T) {
	assert.Equal(t, genesis.NewDevnet().ID(), genesis.NewDevnet().ID())
}

func TestGenesisVerify(t *testing.T) {
	gene := genesis.NewDevnet()

	store, _ := kv.NewMem()
	defer store.Close()
	stater := state.NewStater(store)

	st := stater.NewState()
	require.NoError(t, gene.Build(st))
	require.NoError(t, st.Stage().Commit())

	assert.NoError(t, gene.Verify(stater.NewState()))

	// a fresh store was never seeded by this genesis
	other, _ := kv.NewMem()
	defer other.Close()
	err := gene.Verify(state.NewStater(other).NewState())
	assert.ErrorContains(t, err, "genesis mismatch")
}
