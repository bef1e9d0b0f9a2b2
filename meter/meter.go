// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"fmt"
	"math"

	"github.com/GildCoinDev/gild-crypto/gild"
)

// Meter tracks the budget consumption of a single operation.
//
// Use never blocks an operation mid-flight; the guard inspects the
// meter after the operation body and aborts when the budget was
// exceeded. Consumed units are attributed to read/write/event classes
// by unit price, so the breakdown stays useful in logs.
type Meter struct {
	limit     uint64
	used      uint64
	unlimited bool

	readOps        uint64
	writeNewOps    uint64
	writeUpdateOps uint64
	eventOps       uint64
	customUnits    uint64
}

// New creates a meter bounded by limit units.
func New(limit uint64) *Meter {
	return &Meter{limit: limit}
}

// NewUnlimited creates a meter that never exhausts.
// Used and the breakdown are still tracked.
func NewUnlimited() *Meter {
	return &Meter{unlimited: true}
}

// Use consumes the given number of budget units.
func (m *Meter) Use(units uint64) {
	m.used += units

	switch {
	// attribute multiples of known unit prices, largest first
	case units%gild.BudgetWriteNewUnits == 0 && units > 0:
		m.writeNewOps += units / gild.BudgetWriteNewUnits

	case units%gild.BudgetWriteUpdateUnits == 0 && units > 0:
		m.writeUpdateOps += units / gild.BudgetWriteUpdateUnits

	case units%gild.BudgetEventUnits == 0 && units > 0:
		m.eventOps += units / gild.BudgetEventUnits

	case units%gild.BudgetReadUnits == 0 && units > 0:
		m.readOps += units / gild.BudgetReadUnits

	default:
		m.customUnits += units
	}
}

// Used returns the total units consumed so far.
func (m *Meter) Used() uint64 {
	return m.used
}

// Limit returns the budget granted at entry. Zero when unlimited.
func (m *Meter) Limit() uint64 {
	return m.limit
}

// Unlimited reports whether the meter is unbounded.
func (m *Meter) Unlimited() bool {
	return m.unlimited
}

// Exceeded reports whether consumption passed the limit.
func (m *Meter) Exceeded() bool {
	return !m.unlimited && m.used > m.limit
}

// Remaining returns the units left before exhaustion.
func (m *Meter) Remaining() uint64 {
	if m.unlimited {
		return math.MaxUint64
	}
	if m.used > m.limit {
		return 0
	}
	return m.limit - m.used
}

// Breakdown renders the per-class consumption for logging.
func (m *Meter) Breakdown() string {
	return fmt.Sprintf(
		"READ: %d ops (%d units) | WRITE_NEW: %d ops (%d units) | WRITE_UPDATE: %d ops (%d units) | EVENT: %d ops (%d units) | CUSTOM: %d units | TOTAL: %d units",
		m.readOps,
		m.readOps*gild.BudgetReadUnits,
		m.writeNewOps,
		m.writeNewOps*gild.BudgetWriteNewUnits,
		m.writeUpdateOps,
		m.writeUpdateOps*gild.BudgetWriteUpdateUnits,
		m.eventOps,
		m.eventOps*gild.BudgetEventUnits,
		m.customUnits,
		m.used,
	)
}
