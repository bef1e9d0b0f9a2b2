// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/GildCoinDev/gild-crypto/eventdb"
	"github.com/GildCoinDev/gild-crypto/gild"
)

// FilteredEvent one history row of GET /events.
type FilteredEvent struct {
	Seq     uint64           `json:"seq"`
	Ts      uint64           `json:"ts"`
	Name    string           `json:"name"`
	Address gild.Address     `json:"address"`
	Account gild.Address     `json:"account"`
	Amount  *math.Decimal256 `json:"amount"`
	Data    string           `json:"data"`
}

// FilteredTransfer one history row of GET /transfers.
type FilteredTransfer struct {
	Seq       uint64           `json:"seq"`
	Ts        uint64           `json:"ts"`
	Sender    gild.Address     `json:"sender"`
	Recipient gild.Address     `json:"recipient"`
	Amount    *math.Decimal256 `json:"amount"`
}

func convertEvent(ev *eventdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Seq:     ev.Seq,
		Ts:      ev.Ts,
		Name:    ev.Name,
		Address: ev.Address,
		Account: ev.Account,
		Amount:  (*math.Decimal256)(ev.Amount),
		Data:    hexutil.Encode(ev.Data),
	}
}

func convertTransfer(tr *eventdb.Transfer) *FilteredTransfer {
	return &FilteredTransfer{
		Seq:       tr.Seq,
		Ts:        tr.Ts,
		Sender:    tr.Sender,
		Recipient: tr.Recipient,
		Amount:    (*math.Decimal256)(tr.Amount),
	}
}
