// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/GildCoinDev/gild-crypto/gild"
)

// Recorder accumulates the logs of one guarded operation. Each entry
// charges the event budget price. A nil recorder silently discards,
// which genesis state construction relies on.
type Recorder struct {
	use       func(units uint64)
	events    Events
	transfers Transfers
}

// NewRecorder creates a recorder charging the given budget function
// per recorded entry. use may be nil.
func NewRecorder(use func(units uint64)) *Recorder {
	return &Recorder{use: use}
}

// AddEvent records ev and charges the event price.
func (r *Recorder) AddEvent(ev *Event) {
	if r == nil {
		return
	}
	if r.use != nil {
		r.use(gild.BudgetEventUnits)
	}
	r.events = append(r.events, ev)
}

// AddTransfer records tr and charges the event price.
func (r *Recorder) AddTransfer(tr *Transfer) {
	if r == nil {
		return
	}
	if r.use != nil {
		r.use(gild.BudgetEventUnits)
	}
	r.transfers = append(r.transfers, tr)
}

// Mark remembers the recorder's extent so a revert can discard
// everything logged after it. Budget charges are not refunded.
type Mark struct {
	nEvents    int
	nTransfers int
}

// NewMark captures the current extent.
func (r *Recorder) NewMark() Mark {
	if r == nil {
		return Mark{}
	}
	return Mark{len(r.events), len(r.transfers)}
}

// RevertTo discards entries recorded after the mark.
func (r *Recorder) RevertTo(m Mark) {
	if r == nil {
		return
	}
	r.events = r.events[:m.nEvents]
	r.transfers = r.transfers[:m.nTransfers]
}

// Drain hands over everything recorded and resets the recorder.
func (r *Recorder) Drain() *Output {
	if r == nil {
		return &Output{}
	}
	out := &Output{Events: r.events, Transfers: r.transfers}
	r.events = nil
	r.transfers = nil
	return out
}
