// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GildCoinDev/gild-crypto/api/restutil"
	"github.com/GildCoinDev/gild-crypto/api/staking"
	"github.com/GildCoinDev/gild-crypto/genesis"
)

func initAPIServer(t *testing.T) *httptest.Server {
	l := newTestLedger(t)

	handler, closer := New(l, Options{
		AllowedOrigins: "*",
		LogsLimit:      100,
		SubsCacheSize:  16,
		APILogs:        &atomic.Bool{},
	})
	t.Cleanup(closer)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestAPIServesDoc(t *testing.T) {
	ts := initAPIServer(t)

	// the root redirects to the openapi spec
	body, code := httpGet(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "openapi:")

	body, code = httpGet(t, ts.URL+"/doc/gild.yaml")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "GildCoin Node API")
}

func TestAPIMountsResources(t *testing.T) {
	ts := initAPIServer(t)

	body, code := httpGet(t, ts.URL+"/ledger/status")
	require.Equal(t, http.StatusOK, code)

	var status staking.Status
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "devnet", status.Network)

	governor := genesis.DevAccounts()[0].Address
	_, code = httpPost(t, ts.URL+"/governance/pause", restutil.M{
		"caller": governor,
		"paused": true,
	})
	assert.Equal(t, http.StatusOK, code)

	body, code = httpGet(t, ts.URL+"/events?name=pause_set")
	require.Equal(t, http.StatusOK, code)

	var rows []json.RawMessage
	require.NoError(t, json.Unmarshal(body, &rows))
	assert.Len(t, rows, 1)
}

func TestAPICORSHeaders(t *testing.T) {
	ts := initAPIServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/ledger/status", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://wallet.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "content-type, x-genesis-id")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()

	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}
