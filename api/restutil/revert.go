// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"encoding/json"
	"net/http"

	"github.com/GildCoinDev/gild-crypto/builtin/reverts"
)

// RevertResponse is the error body of a reverted operation.
type RevertResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// RevertStatus maps a revert kind to an http status code. Timing
// reverts use 425 so a caller can tell "retry later" from a plain bad
// request.
func RevertStatus(kind reverts.Kind) int {
	switch kind {
	case reverts.Validation:
		return http.StatusBadRequest
	case reverts.Timing:
		return http.StatusTooEarly
	case reverts.Authorization:
		return http.StatusForbidden
	case reverts.State, reverts.Reentrancy, reverts.Preemption:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteRevert responds a reverted operation as JSON. It reports false
// when err carries no revert kind, leaving the response untouched.
func WriteRevert(w http.ResponseWriter, err error) bool {
	kind, ok := reverts.KindOf(err)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", JSONContentType)
	w.WriteHeader(RevertStatus(kind))
	// the encode error is unrecoverable here, the status is already written
	_ = json.NewEncoder(w).Encode(&RevertResponse{
		Error: err.Error(),
		Kind:  kind.String(),
	})
	return true
}
