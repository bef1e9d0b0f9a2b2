// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/GildCoinDev/gild-crypto/gild"
)

func RandAddress() (addr gild.Address) {
	rand.Read(addr[:])
	return
}
