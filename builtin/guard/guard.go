// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package guard wraps every state-mutating operation in the fixed
// admission chain: reentrancy exclusion, pause gate, atomic body,
// budget post-checks. Operations aborted anywhere in the chain leave
// no trace in state or in the event journal.
package guard

import (
	"sync/atomic"

	"github.com/GildCoinDev/gild-crypto/builtin/reverts"
	"github.com/GildCoinDev/gild-crypto/events"
	"github.com/GildCoinDev/gild-crypto/meter"
	"github.com/GildCoinDev/gild-crypto/state"
)

// Mode selects the pause gate of an operation.
type Mode int

const (
	// RequireUnpaused admits only while the system runs normally.
	RequireUnpaused Mode = iota
	// RequirePaused admits only while the system is halted.
	RequirePaused
	// Any skips the pause gate.
	Any
)

// DefaultDivisor bounds the budget share an admitted operation must
// retain: aborting when less than 1/64th remains flags preemption.
const DefaultDivisor = 64

// Pauser reports the pause switch.
type Pauser interface {
	Paused() (bool, error)
}

// Guard owns the in-progress flag of one ledger instance.
type Guard struct {
	pauser   Pauser
	state    *state.State
	recorder *events.Recorder
	divisor  uint64
	busy     atomic.Bool
}

func New(pauser Pauser, state *state.State, recorder *events.Recorder, divisor uint64) *Guard {
	if divisor == 0 {
		divisor = DefaultDivisor
	}
	return &Guard{
		pauser:   pauser,
		state:    state,
		recorder: recorder,
		divisor:  divisor,
	}
}

// Run admits body through the guard chain and applies its effects
// atomically. Any error unwinds the state checkpoint and the event
// mark, so a failed operation is indistinguishable from one never
// attempted.
//
// After the body, two post-checks run against the meter: exceeding the
// budget aborts, and retaining less than 1/divisor of the budget
// available at admission aborts as suspected preemption. An unlimited
// meter disables the preemption heuristic.
func (g *Guard) Run(mode Mode, m *meter.Meter, body func() error) error {
	if !g.busy.CompareAndSwap(false, true) {
		return reverts.ErrReentrancy
	}
	defer g.busy.Store(false)

	entry := m.Remaining()

	paused, err := g.pauser.Paused()
	if err != nil {
		return err
	}
	switch mode {
	case RequireUnpaused:
		if paused {
			return reverts.ErrPaused
		}
	case RequirePaused:
		if !paused {
			return reverts.ErrNotPaused
		}
	}

	checkpoint := g.state.NewCheckpoint()
	mark := g.recorder.NewMark()

	revert := func() {
		g.state.RevertTo(checkpoint)
		g.recorder.RevertTo(mark)
	}

	if err := body(); err != nil {
		revert()
		return err
	}

	if m.Exceeded() {
		revert()
		return reverts.ErrBudgetExhausted
	}

	if !m.Unlimited() {
		if left := m.Remaining(); left < entry/g.divisor {
			revert()
			return reverts.ErrPreemption
		}
	}
	return nil
}
