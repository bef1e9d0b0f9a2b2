// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/GildCoinDev/gild-crypto/gild"
)

// module anchors a builtin to its reserved address. Addresses derive
// from the ASCII name, far outside the space of user accounts.
type module struct {
	name    string
	Address gild.Address
}

func newModule(name string) *module {
	return &module{
		name,
		gild.BytesToAddress([]byte(name)),
	}
}

func (m *module) Name() string {
	return m.name
}
