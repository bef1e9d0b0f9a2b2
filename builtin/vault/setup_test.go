// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GildCoinDev/gild-crypto/builtin/authority"
	"github.com/GildCoinDev/gild-crypto/builtin/params"
	"github.com/GildCoinDev/gild-crypto/builtin/token"
	"github.com/GildCoinDev/gild-crypto/events"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/kv"
	"github.com/GildCoinDev/gild-crypto/meter"
	"github.com/GildCoinDev/gild-crypto/slot"
	"github.com/GildCoinDev/gild-crypto/state"
)

var (
	poolAddr = gild.BytesToAddress([]byte("vault"))
	governor = gild.BytesToAddress([]byte("governor"))
	alice    = gild.BytesToAddress([]byte("alice"))
	bob      = gild.BytesToAddress([]byte("bob"))
)

// testVault wires a vault with live token, params and authority
// modules over one in-memory state.
type testVault struct {
	t     *testing.T
	vault *Vault
	token *token.Token
	auth  *authority.Authority
	rec   *events.Recorder
}

func newTestVault(t *testing.T) *testVault {
	store, _ := kv.NewMem()
	st := state.NewStater(store).NewState()
	m := meter.NewUnlimited()
	rec := events.NewRecorder(m.Use)

	tok := token.New(slot.NewContext(gild.BytesToAddress([]byte("token")), st, m.Use), rec)
	par := params.New(slot.NewContext(gild.BytesToAddress([]byte("params")), st, m.Use))
	aut := authority.New(slot.NewContext(gild.BytesToAddress([]byte("authority")), st, m.Use))

	par.Set(gild.KeyRewardRate, big.NewInt(12))
	aut.SetGovernor(governor)

	v := New(slot.NewContext(poolAddr, st, m.Use), tok, par, aut, rec)

	return &testVault{
		t:     t,
		vault: v,
		token: tok,
		auth:  aut,
		rec:   rec,
	}
}

// gilds converts whole tokens to base units.
func gilds(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), gild.OneGild)
}

func (tv *testVault) fund(addr gild.Address, amount *big.Int) *testVault {
	require.NoError(tv.t, tv.token.Mint(addr, amount))
	tv.rec.Drain()
	return tv
}

func (tv *testVault) stake(addr gild.Address, amount *big.Int, now uint64) *testVault {
	require.NoError(tv.t, tv.vault.Stake(addr, amount, now))
	return tv
}

func (tv *testVault) unstake(addr gild.Address, amount *big.Int, now uint64) *testVault {
	require.NoError(tv.t, tv.vault.Unstake(addr, amount, now))
	return tv
}

func (tv *testVault) claim(addr gild.Address, now uint64) *testVault {
	require.NoError(tv.t, tv.vault.Claim(addr, now))
	return tv
}

func (tv *testVault) balance(addr gild.Address) *big.Int {
	bal, err := tv.token.BalanceOf(addr)
	require.NoError(tv.t, err)
	return bal
}

func (tv *testVault) position(addr gild.Address) *Position {
	pos, err := tv.vault.PositionOf(addr)
	require.NoError(tv.t, err)
	return pos
}

func (tv *testVault) totalStaked() *big.Int {
	total, err := tv.vault.TotalStaked()
	require.NoError(tv.t, err)
	return total
}
