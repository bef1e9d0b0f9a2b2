// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger composes the staking engines, the store and the event
// history into the public operation surface. One guarded operation runs
// at a time; every applied operation commits its slot writes and its
// recorded events together.
package ledger

import (
	"math/big"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/GildCoinDev/gild-crypto/builtin"
	"github.com/GildCoinDev/gild-crypto/builtin/authority"
	"github.com/GildCoinDev/gild-crypto/builtin/guard"
	"github.com/GildCoinDev/gild-crypto/builtin/inflation"
	"github.com/GildCoinDev/gild-crypto/builtin/params"
	"github.com/GildCoinDev/gild-crypto/builtin/reverts"
	"github.com/GildCoinDev/gild-crypto/builtin/token"
	"github.com/GildCoinDev/gild-crypto/builtin/vault"
	"github.com/GildCoinDev/gild-crypto/co"
	"github.com/GildCoinDev/gild-crypto/eventdb"
	"github.com/GildCoinDev/gild-crypto/events"
	"github.com/GildCoinDev/gild-crypto/genesis"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/kv"
	"github.com/GildCoinDev/gild-crypto/log"
	"github.com/GildCoinDev/gild-crypto/meter"
	"github.com/GildCoinDev/gild-crypto/state"
)

var logger = log.WithContext("pkg", "ledger")

// Events emitted by the facade itself.
const (
	EventPauseSet    = "pause_set"
	EventGovernorSet = "governor_set"
)

// Clock supplies operation timestamps in unix seconds.
type Clock func() uint64

// SystemClock reads the wall clock.
func SystemClock() uint64 {
	return uint64(time.Now().Unix())
}

// Options tunes a ledger instance.
type Options struct {
	// Budget caps the metered work of one operation. 0 runs unmetered.
	Budget uint64
	// Divisor of the guard's anti-preemption floor. 0 picks the default.
	Divisor uint64
	// Clock defaults to SystemClock.
	Clock Clock
}

// Receipt summarizes one applied operation.
type Receipt struct {
	Events     events.Events `json:"events"`
	BudgetUsed uint64        `json:"budgetUsed"`
}

// Status is the ledger wide view.
type Status struct {
	Network              string       `json:"network"`
	GenesisID            gild.Bytes32 `json:"genesisID"`
	TotalStaked          *big.Int     `json:"totalStaked"`
	TotalSupply          *big.Int     `json:"totalSupply"`
	PoolBalance          *big.Int     `json:"poolBalance"`
	RewardRatePercent    *big.Int     `json:"rewardRatePercent"`
	InflationRatePercent *big.Int     `json:"inflationRatePercent"`
	LastInflationTime    uint64       `json:"lastInflationTime"`
	Paused               bool         `json:"paused"`
}

// Ledger is the composed staking ledger over one data dir.
type Ledger struct {
	stater  *state.Stater
	eventDB *eventdb.EventDB
	gene    *genesis.Genesis
	options Options

	lock sync.Mutex
	tick co.Signal
}

// env carries the modules bound for one operation.
type env struct {
	now    uint64
	params *params.Params
	auth   *authority.Authority
	token  *token.Token
	vault  *vault.Vault
	infl   *inflation.Inflation
	rec    *events.Recorder
}

// Open composes a ledger over the given store and event history.
// An empty store is seeded with the genesis presets; a non-empty one
// must carry this genesis' stamp.
func Open(store kv.Store, eventDB *eventdb.EventDB, gene *genesis.Genesis, options Options) (*Ledger, error) {
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	stater := state.NewStater(store)

	st := stater.NewState()
	stamped, err := st.GetStorage(builtin.Params.Address, gild.KeyGenesisID)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis stamp")
	}
	if stamped.IsZero() {
		if err := gene.Build(st); err != nil {
			return nil, errors.Wrap(err, "build genesis")
		}
		if err := st.Stage().Commit(); err != nil {
			return nil, errors.Wrap(err, "commit genesis")
		}
		logger.Info("genesis seeded", "network", gene.Name(), "id", gene.ID())
	} else if err := gene.Verify(st); err != nil {
		return nil, err
	}

	return &Ledger{
		stater:  stater,
		eventDB: eventDB,
		gene:    gene,
		options: options,
	}, nil
}

// Genesis returns the genesis this ledger was opened with.
func (l *Ledger) Genesis() *genesis.Genesis {
	return l.gene
}

// EventDB exposes the committed event history.
func (l *Ledger) EventDB() *eventdb.EventDB {
	return l.eventDB
}

// Now reads the ledger clock.
func (l *Ledger) Now() uint64 {
	return l.options.Clock()
}

// NewTicker returns a waiter signalled after every committed operation.
func (l *Ledger) NewTicker() co.Waiter {
	return l.tick.NewWaiter()
}

func (l *Ledger) newMeter() *meter.Meter {
	if l.options.Budget == 0 {
		return meter.NewUnlimited()
	}
	return meter.New(l.options.Budget)
}

// run admits one state-mutating operation through the guard, then
// commits slots and event history together.
func (l *Ledger) run(op string, mode guard.Mode, body func(e *env) error) (*Receipt, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	began := time.Now()
	now := l.options.Clock()

	st := l.stater.NewState()
	m := l.newMeter()
	rec := events.NewRecorder(m.Use)

	prm := builtin.Params.Bind(st, m.Use)
	auth := builtin.Authority.Bind(st, m.Use)
	tok := builtin.Token.Bind(st, m.Use, rec)
	vlt := builtin.Vault.Bind(st, m.Use, tok, prm, auth, rec)
	infl := builtin.Inflation.Bind(st, m.Use, tok, prm, auth, rec)

	g := guard.New(prm, st, rec, l.options.Divisor)
	err := g.Run(mode, m, func() error {
		return body(&env{now, prm, auth, tok, vlt, infl, rec})
	})
	if err != nil {
		metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": "reverted"})
		logger.Debug("operation reverted", "op", op, "err", err)
		return nil, err
	}

	if err := st.Stage().Commit(); err != nil {
		metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": "failed"})
		return nil, errors.Wrap(err, "commit state")
	}
	output := rec.Drain()
	if err := l.eventDB.Append(now, output); err != nil {
		// slots are already durable, the history is best effort
		logger.Error("failed to append event history", "op", op, "err", err)
	}
	l.tick.Broadcast()

	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": "applied"})
	metricOpDuration().ObserveWithLabels(time.Since(began).Milliseconds(), map[string]string{"op": op})
	metricBudgetUsed().Observe(int64(m.Used()))
	metricEventsAppended().Add(int64(len(output.Events)))

	return &Receipt{
		Events:     output.Events,
		BudgetUsed: m.Used(),
	}, nil
}

// Stake locks amount of the caller's balance into the pool.
func (l *Ledger) Stake(caller gild.Address, amount *big.Int) (*Receipt, error) {
	return l.run("stake", guard.RequireUnpaused, func(e *env) error {
		return e.vault.Stake(caller, amount, e.now)
	})
}

// Unstake returns amount of principal to the caller after unbonding.
func (l *Ledger) Unstake(caller gild.Address, amount *big.Int) (*Receipt, error) {
	return l.run("unstake", guard.RequireUnpaused, func(e *env) error {
		return e.vault.Unstake(caller, amount, e.now)
	})
}

// Claim pays out the caller's settled rewards.
func (l *Ledger) Claim(caller gild.Address) (*Receipt, error) {
	return l.run("claim", guard.RequireUnpaused, func(e *env) error {
		return e.vault.Claim(caller, e.now)
	})
}

// EmergencyWithdraw recovers principal while the system is halted,
// skipping the unbonding clock. Reward bookkeeping stays untouched.
func (l *Ledger) EmergencyWithdraw(caller gild.Address, amount *big.Int) (*Receipt, error) {
	return l.run("emergency_withdraw", guard.RequirePaused, func(e *env) error {
		return e.vault.EmergencyWithdraw(caller, amount)
	})
}

// MintInflation applies the annual inflation schedule. Inside the
// interval it applies nothing and succeeds with an empty receipt.
func (l *Ledger) MintInflation(caller gild.Address) (*Receipt, error) {
	return l.run("mint_inflation", guard.RequireUnpaused, func(e *env) error {
		return e.infl.Mint(caller, e.now)
	})
}

// SetGoldBoost sets the account's reward boost percentage.
func (l *Ledger) SetGoldBoost(caller, account gild.Address, value uint8) (*Receipt, error) {
	return l.run("set_gold_boost", guard.Any, func(e *env) error {
		return e.vault.SetBoost(caller, account, value)
	})
}

// SetRewardRate updates the APY percentage.
func (l *Ledger) SetRewardRate(caller gild.Address, value *big.Int) (*Receipt, error) {
	return l.run("set_reward_rate", guard.Any, func(e *env) error {
		return e.vault.SetRewardRate(caller, value)
	})
}

// SetInflationRate updates the annual inflation percentage.
func (l *Ledger) SetInflationRate(caller gild.Address, value *big.Int) (*Receipt, error) {
	return l.run("set_inflation_rate", guard.Any, func(e *env) error {
		return e.infl.SetRate(caller, value)
	})
}

// SetPaused toggles the pause switch. Never pause-gated itself.
func (l *Ledger) SetPaused(caller gild.Address, on bool) (*Receipt, error) {
	return l.run("set_paused", guard.Any, func(e *env) error {
		ok, err := e.auth.IsGovernor(caller)
		if err != nil {
			return err
		}
		if !ok {
			return reverts.ErrNotAuthorized
		}
		if err := e.params.SetPaused(on); err != nil {
			return err
		}

		value := big.NewInt(0)
		if on {
			value = big.NewInt(1)
		}
		e.rec.AddEvent(&events.Event{
			Address: builtin.Params.Address,
			Name:    EventPauseSet,
			Amount:  value,
		})
		return nil
	})
}

// SetGovernor hands the governor role to next.
func (l *Ledger) SetGovernor(caller, next gild.Address) (*Receipt, error) {
	return l.run("set_governor", guard.Any, func(e *env) error {
		if err := e.auth.Handoff(caller, next); err != nil {
			return err
		}
		e.rec.AddEvent(&events.Event{
			Address: builtin.Authority.Address,
			Name:    EventGovernorSet,
			Account: next,
		})
		return nil
	})
}

// view runs a read-only body over a fresh state.
func (l *Ledger) view(body func(e *env) error) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	st := l.stater.NewState()
	use := func(uint64) {}

	prm := builtin.Params.Bind(st, use)
	auth := builtin.Authority.Bind(st, use)
	tok := builtin.Token.Bind(st, use, nil)
	vlt := builtin.Vault.Bind(st, use, tok, prm, auth, nil)
	infl := builtin.Inflation.Bind(st, use, tok, prm, auth, nil)

	return body(&env{l.options.Clock(), prm, auth, tok, vlt, infl, nil})
}

// Status reads the ledger wide view.
func (l *Ledger) Status() (*Status, error) {
	var status Status
	err := l.view(func(e *env) error {
		status.Network = l.gene.Name()
		status.GenesisID = l.gene.ID()

		var err error
		if status.TotalStaked, err = e.vault.TotalStaked(); err != nil {
			return err
		}
		if status.TotalSupply, err = e.token.TotalSupply(); err != nil {
			return err
		}
		if status.PoolBalance, err = e.token.BalanceOf(builtin.Vault.Address); err != nil {
			return err
		}
		if status.RewardRatePercent, err = e.params.Get(gild.KeyRewardRate); err != nil {
			return err
		}
		if status.InflationRatePercent, err = e.params.Get(gild.KeyInflationRate); err != nil {
			return err
		}
		if status.LastInflationTime, err = e.infl.LastTime(); err != nil {
			return err
		}
		status.Paused, err = e.params.Paused()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// PositionOf reads the stored position of addr and its reward projected
// to at. at == 0 projects to the current clock.
func (l *Ledger) PositionOf(addr gild.Address, at uint64) (*vault.Position, *big.Int, error) {
	var (
		pos     *vault.Position
		pending *big.Int
	)
	err := l.view(func(e *env) error {
		if at == 0 {
			at = e.now
		}
		var err error
		if pos, err = e.vault.PositionOf(addr); err != nil {
			return err
		}
		pending, err = e.vault.PendingReward(addr, at)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return pos, pending, nil
}

// BalanceOf reads the liquid token balance of addr.
func (l *Ledger) BalanceOf(addr gild.Address) (*big.Int, error) {
	var balance *big.Int
	err := l.view(func(e *env) error {
		var err error
		balance, err = e.token.BalanceOf(addr)
		return err
	})
	return balance, err
}

// Paused reads the pause switch.
func (l *Ledger) Paused() (bool, error) {
	var paused bool
	err := l.view(func(e *env) error {
		var err error
		paused, err = e.params.Paused()
		return err
	})
	return paused, err
}

// Governor reads the current governor address.
func (l *Ledger) Governor() (gild.Address, error) {
	var governor gild.Address
	err := l.view(func(e *env) error {
		var err error
		governor, err = e.auth.Governor()
		return err
	})
	return governor, err
}
