// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"math/big"

	"github.com/GildCoinDev/gild-crypto/gild"
)

// Event structured occurrence emitted by a module operation.
type Event struct {
	Address gild.Address // emitting module
	Name    string
	Account gild.Address // subject account, zero for system-wide events
	Amount  *big.Int
	Data    []byte // auxiliary payload, usually empty
}

// Events slice of event logs.
type Events []*Event

// Transfer token movement log.
type Transfer struct {
	Sender    gild.Address
	Recipient gild.Address
	Amount    *big.Int
}

// Transfers slice of transfer logs.
type Transfers []*Transfer

// Output collects everything recorded during one operation.
type Output struct {
	Events    Events
	Transfers Transfers
}
