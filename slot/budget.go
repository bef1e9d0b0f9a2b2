// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

// wordSize converts a byte length to charged storage words, here we define
// a simplified rule. Any length larger than 32 is priced as 2 words, since
// module slot payloads stay small.
func wordSize(length int) uint64 {
	if length > 32 {
		return 2
	}

	return 1
}
