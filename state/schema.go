// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/GildCoinDev/gild-crypto/gild"

// schemaVersion tags persisted slot keys. Bump on layout changes.
const schemaVersion = byte(0x01)

// slotKey computes the persisted key of a storage slot. The address and
// key are folded through Blake2b and prefixed with the schema version,
// so slots of all modules share one flat keyspace without collisions.
func slotKey(addr gild.Address, key gild.Bytes32) []byte {
	hash := gild.Blake2b(addr.Bytes(), key.Bytes())
	buf := make([]byte, 0, 1+32)
	buf = append(buf, schemaVersion)
	buf = append(buf, hash.Bytes()...)
	return buf
}
