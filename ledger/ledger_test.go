// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger_test

import (
	"context"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GildCoinDev/gild-crypto/builtin/reverts"
	"github.com/GildCoinDev/gild-crypto/eventdb"
	"github.com/GildCoinDev/gild-crypto/genesis"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/kv"
	"github.com/GildCoinDev/gild-crypto/ledger"
)

type testLedger struct {
	t *testing.T
	l *ledger.Ledger

	store *kv.LevelDB
	db    *eventdb.EventDB
	now   uint64

	governor gild.Address
	alice    gild.Address
	bob      gild.Address
}

func newTestLedger(t *testing.T, options ledger.Options) *testLedger {
	store, err := kv.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	gene := genesis.NewDevnet()
	tl := &testLedger{
		t:        t,
		store:    store,
		db:       db,
		now:      gene.LaunchTime(),
		governor: genesis.DevAccounts()[0].Address,
		alice:    genesis.DevAccounts()[1].Address,
		bob:      genesis.DevAccounts()[2].Address,
	}
	options.Clock = func() uint64 { return tl.now }
	l, err := ledger.Open(store, db, gene, options)
	require.NoError(t, err)
	tl.l = l
	return tl
}

func (tl *testLedger) advance(seconds uint64) {
	tl.now += seconds
}

func (tl *testLedger) balance(addr gild.Address) *big.Int {
	bal, err := tl.l.BalanceOf(addr)
	require.NoError(tl.t, err)
	return bal
}

func (tl *testLedger) eventCount() uint64 {
	n, err := tl.db.CountEvents(context.Background())
	require.NoError(tl.t, err)
	return n
}

func gilds(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), gild.OneGild)
}

func TestOpenSeedsGenesisOnce(t *testing.T) {
	tl := newTestLedger(t, ledger.Options{})

	status, err := tl.l.Status()
	require.NoError(t, err)
	assert.Equal(t, "devnet", status.Network)
	assert.Equal(t, gilds(10_000_000), status.TotalSupply)
	assert.Equal(t, big.NewInt(12), status.RewardRatePercent)
	assert.Equal(t, big.NewInt(2), status.InflationRatePercent)
	assert.Equal(t, tl.now, status.LastInflationTime)
	assert.False(t, status.Paused)
	assert.Zero(t, status.TotalStaked.Sign())

	// reopening the same store must not seed again
	again, err := ledger.Open(tl.store, tl.db, genesis.NewDevnet(), ledger.Options{})
	require.NoError(t, err)
	status, err = again.Status()
	require.NoError(t, err)
	assert.Equal(t, gilds(10_000_000), status.TotalSupply)
}

func TestOpenRejectsForeignDataDir(t *testing.T) {
	tl := newTestLedger(t, ledger.Options{})

	governor := gild.BytesToAddress([]byte("gov"))
	balance := genesis.HexOrDecimal256(*gilds(100))
	custom := &genesis.CustomGenesis{
		LaunchTime: 1735689600,
		Governor:   governor,
		Accounts:   []genesis.Account{{Address: governor, Balance: &balance}},
	}
	data, err := json.Marshal(custom)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	gene, err := genesis.NewCustomNet(path)
	require.NoError(t, err)

	_, err = ledger.Open(tl.store, tl.db, gene, ledger.Options{})
	assert.ErrorContains(t, err, "genesis mismatch")
}

func TestStakeFlow(t *testing.T) {
	tl := newTestLedger(t, ledger.Options{})

	receipt, err := tl.l.Stake(tl.alice, gilds(100))
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, "staked", receipt.Events[0].Name)
	assert.Equal(t, tl.alice, receipt.Events[0].Account)
	assert.Equal(t, gilds(100), receipt.Events[0].Amount)
	assert.True(t, receipt.BudgetUsed > 0)

	pos, pending, err := tl.l.PositionOf(tl.alice, 0)
	require.NoError(t, err)
	assert.Equal(t, gilds(100), pos.Principal)
	assert.Zero(t, pending.Sign())

	status, err := tl.l.Status()
	require.NoError(t, err)
	assert.Equal(t, gilds(100), status.TotalStaked)
	assert.Equal(t, gilds(100), status.PoolBalance)

	assert.Equal(t, gilds(1_000_000-100), tl.balance(tl.alice))

	// the committed operation landed in the history
	evs, err := tl.db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "staked", evs[0].Name)
	assert.Equal(t, tl.now, evs[0].Ts)
	transfers, err := tl.db.FilterTransfers(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
}

func TestUnstakeWaitsForUnbonding(t *testing.T) {
	tl := newTestLedger(t, ledger.Options{})

	_, err := tl.l.Stake(tl.alice, gilds(100))
	require.NoError(t, err)

	tl.advance(gild.UnbondingPeriod - 1)
	_, err = tl.l.Unstake(tl.alice, gilds(100))
	assert.ErrorIs(t, err, reverts.ErrUnbondingNotElapsed)

	tl.advance(1)
	receipt, err := tl.l.Unstake(tl.alice, gilds(100))
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, "unstaked", receipt.Events[0].Name)
	assert.Equal(t, gilds(1_000_000), tl.balance(tl.alice))
}

func TestClaimPaysFromPool(t *testing.T) {
	tl := newTestLedger(t, ledger.Options{})

	_, err := tl.l.Stake(tl.alice, gilds(100))
	require.NoError(t, err)

	tl.advance(gild.SecondsPerYear)
	_, pending, err := tl.l.PositionOf(tl.alice, 0)
	require.NoError(t, err)
	assert.Equal(t, gilds(12), pending)

	receipt, err := tl.l.Claim(tl.alice)
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, "reward_claimed", receipt.Events[0].Name)
	assert.Equal(t, gilds(12), receipt.Events[0].Amount)
	assert.Equal(t, gilds(1_000_000-100+12), tl.balance(tl.alice))

	// nothing left to pay, the retry is a silent no-op
	receipt, err = tl.l.Claim(tl.alice)
	require.NoError(t, err)
	assert.Empty(t, receipt.Events)
}

func TestPauseGatesOperations(t *testing.T) {
	tl := newTestLedger(t, ledger.Options{})

	_, err := tl.l.Stake(tl.alice, gilds(100))
	require.NoError(t, err)

	// emergency withdrawal needs the halt
	_, err = tl.l.EmergencyWithdraw(tl.alice, gilds(100))
	assert.ErrorIs(t, err, reverts.ErrNotPaused)

	_, err = tl.l.SetPaused(tl.alice, true)
	assert.ErrorIs(t, err, reverts.ErrNotAuthorized)

	receipt, err := tl.l.SetPaused(tl.governor, true)
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, ledger.EventPauseSet, receipt.Events[0].Name)

	_, err = tl.l.Stake(tl.alice, gilds(100))
	assert.ErrorIs(t, err, reverts.ErrPaused)

	// no unbonding wait on the emergency path
	receipt, err = tl.l.EmergencyWithdraw(tl.alice, gilds(100))
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, "emergency_withdrawal", receipt.Events[0].Name)
	assert.Equal(t, gilds(1_000_000), tl.balance(tl.alice))

	_, err = tl.l.SetPaused(tl.governor, false)
	require.NoError(t, err)
	paused, err := tl.l.Paused()
	require.NoError(t, err)
	assert.False(t, paused)
}

func TestGovernorHandoff(t *testing.T) {
	tl := newTestLedger(t, ledger.Options{})

	governor, err := tl.l.Governor()
	require.NoError(t, err)
	assert.Equal(t, tl.governor, governor)

	_, err = tl.l.SetGovernor(tl.alice, tl.alice)
	assert.ErrorIs(t, err, reverts.ErrNotAuthorized)

	receipt, err := tl.l.SetGovernor(tl.governor, tl.bob)
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, ledger.EventGovernorSet, receipt.Events[0].Name)
	assert.Equal(t, tl.bob, receipt.Events[0].Account)

	// the old governor lost the role
	_, err = tl.l.SetRewardRate(tl.governor, big.NewInt(10))
	assert.ErrorIs(t, err, reverts.ErrNotAuthorized)
	_, err = tl.l.SetRewardRate(tl.bob, big.NewInt(10))
	require.NoError(t, err)
}

func TestGovernanceSetters(t *testing.T) {
	tl := newTestLedger(t, ledger.Options{})

	receipt, err := tl.l.SetGoldBoost(tl.governor, tl.alice, 20)
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, "boost_set", receipt.Events[0].Name)

	_, err = tl.l.SetGoldBoost(tl.governor, tl.alice, 21)
	assert.ErrorIs(t, err, reverts.ErrBoostAboveCap)

	_, err = tl.l.SetInflationRate(tl.governor, big.NewInt(3))
	require.NoError(t, err)
	status, err := tl.l.Status()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3), status.InflationRatePercent)

	// governance stays available while paused
	_, err = tl.l.SetPaused(tl.governor, true)
	require.NoError(t, err)
	_, err = tl.l.SetRewardRate(tl.governor, big.NewInt(9))
	require.NoError(t, err)
}

func TestMintInflation(t *testing.T) {
	tl := newTestLedger(t, ledger.Options{})

	_, err := tl.l.MintInflation(tl.alice)
	assert.ErrorIs(t, err, reverts.ErrNotAuthorized)

	// inside the interval nothing applies
	receipt, err := tl.l.MintInflation(tl.governor)
	require.NoError(t, err)
	assert.Empty(t, receipt.Events)

	tl.advance(gild.InflationInterval)
	receipt, err = tl.l.MintInflation(tl.governor)
	require.NoError(t, err)
	require.Len(t, receipt.Events, 2)
	assert.Equal(t, "inflation_minted", receipt.Events[0].Name)
	assert.Equal(t, "tokens_burned", receipt.Events[1].Name)

	// 2% of 10M, half minted half burned
	assert.Equal(t, gilds(100_000), receipt.Events[0].Amount)
	assert.Equal(t, gilds(100_000), receipt.Events[1].Amount)

	status, err := tl.l.Status()
	require.NoError(t, err)
	assert.Equal(t, tl.now, status.LastInflationTime)

	// the schedule advanced, the retry applies nothing
	receipt, err = tl.l.MintInflation(tl.governor)
	require.NoError(t, err)
	assert.Empty(t, receipt.Events)
}

func TestRevertedOperationLeavesNoTrace(t *testing.T) {
	tl := newTestLedger(t, ledger.Options{})

	_, err := tl.l.Stake(tl.alice, gilds(1))
	assert.ErrorIs(t, err, reverts.ErrBelowMinimumStake)
	kind, ok := reverts.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, reverts.Validation, kind)

	assert.Zero(t, tl.eventCount())
	assert.Equal(t, gilds(1_000_000), tl.balance(tl.alice))
	status, err := tl.l.Status()
	require.NoError(t, err)
	assert.Zero(t, status.TotalStaked.Sign())
}

func TestBudgetExhaustedReverts(t *testing.T) {
	tl := newTestLedger(t, ledger.Options{Budget: 1000})

	_, err := tl.l.Stake(tl.alice, gilds(100))
	assert.ErrorIs(t, err, reverts.ErrBudgetExhausted)
	assert.Zero(t, tl.eventCount())
	assert.Equal(t, gilds(1_000_000), tl.balance(tl.alice))
}

func TestNewTickerFiresOnCommit(t *testing.T) {
	tl := newTestLedger(t, ledger.Options{})

	w := tl.l.NewTicker()
	_, err := tl.l.Stake(tl.alice, gilds(100))
	require.NoError(t, err)

	select {
	case <-w.C():
	case <-time.After(time.Second):
		t.Fatal("expected a tick after the committed operation")
	}
}
