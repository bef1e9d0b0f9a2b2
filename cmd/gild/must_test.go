// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GildCoinDev/gild-crypto/api/doc"
	"github.com/GildCoinDev/gild-crypto/genesis"
)

func TestHandleXGenesisID(t *testing.T) {
	gene := genesis.NewDevnet()
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := handleXGenesisID(inner, gene.ID())

	// no id supplied, passes through and stamps the response
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ledger/status", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, gene.ID().String(), rr.Header().Get("x-genesis-id"))

	// matching id in the header
	req := httptest.NewRequest(http.MethodGet, "/ledger/status", nil)
	req.Header.Set("x-genesis-id", gene.ID().String())
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	// mismatching id in the query string
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ledger/status?x-genesis-id=0x00", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "genesis id mismatch", strings.TrimSpace(rr.Body.String()))
	assert.Equal(t, gene.ID().String(), rr.Header().Get("x-genesis-id"))
}

func TestHandleXGildestVersion(t *testing.T) {
	inner := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	rr := httptest.NewRecorder()
	handleXGildestVersion(inner).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, doc.Version(), rr.Header().Get("x-gildest-ver"))
}
