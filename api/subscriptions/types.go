// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/GildCoinDev/gild-crypto/eventdb"
	"github.com/GildCoinDev/gild-crypto/gild"
)

// SubscriptionEvent one pushed feed message. Seq doubles as the resume
// cursor: reconnect with ?pos=<seq of the last received message>.
type SubscriptionEvent struct {
	Seq     uint64           `json:"seq"`
	Ts      uint64           `json:"ts"`
	Name    string           `json:"name"`
	Address gild.Address     `json:"address"`
	Account gild.Address     `json:"account"`
	Amount  *math.Decimal256 `json:"amount"`
	Data    string           `json:"data"`
}

func convertEvent(ev *eventdb.Event) *SubscriptionEvent {
	return &SubscriptionEvent{
		Seq:     ev.Seq,
		Ts:      ev.Ts,
		Name:    ev.Name,
		Address: ev.Address,
		Account: ev.Account,
		Amount:  (*math.Decimal256)(ev.Amount),
		Data:    hexutil.Encode(ev.Data),
	}
}

// EventFilter narrows the feed of one connection.
type EventFilter struct {
	Name    string
	Account *gild.Address
}

func (f *EventFilter) match(ev *eventdb.Event) bool {
	if f == nil {
		return true
	}
	if f.Name != "" && f.Name != ev.Name {
		return false
	}
	if f.Account != nil && *f.Account != ev.Account {
		return false
	}
	return true
}
