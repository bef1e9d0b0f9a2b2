// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"context"

	"github.com/GildCoinDev/gild-crypto/ledger"
)

// Status reports whether the node can serve. The two backing stores
// are probed with the cheapest read each supports.
type Status struct {
	Healthy          bool `json:"healthy"`
	StoreReachable   bool `json:"storeReachable"`
	HistoryReachable bool `json:"historyReachable"`
	Paused           bool `json:"paused"`
}

type Health struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Health {
	return &Health{
		ledger: ledger,
	}
}

func (h *Health) Status(ctx context.Context) *Status {
	status := &Status{}

	paused, err := h.ledger.Paused()
	if err == nil {
		status.StoreReachable = true
		status.Paused = paused
	}

	if _, err := h.ledger.EventDB().NewestEventSeq(ctx); err == nil {
		status.HistoryReachable = true
	}

	status.Healthy = status.StoreReachable && status.HistoryReachable
	return status
}
