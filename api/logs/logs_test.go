// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs_test

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GildCoinDev/gild-crypto/api/logs"
	"github.com/GildCoinDev/gild-crypto/eventdb"
	"github.com/GildCoinDev/gild-crypto/events"
	"github.com/GildCoinDev/gild-crypto/gild"
)

var (
	vaultAddr = gild.BytesToAddress([]byte("vault"))
	alice     = gild.BytesToAddress([]byte("alice"))
	bob       = gild.BytesToAddress([]byte("bob"))
)

const testLimit = 10

func initLogsServer(t *testing.T) *httptest.Server {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	// 20 staked events alternating between two accounts, with one
	// transfer each, at ts 1..20
	for i := 1; i <= 20; i++ {
		account := alice
		if i%2 == 0 {
			account = bob
		}
		require.NoError(t, db.Append(uint64(i), &events.Output{
			Events: events.Events{{
				Address: vaultAddr,
				Name:    "staked",
				Account: account,
				Amount:  big.NewInt(int64(i)),
			}},
			Transfers: events.Transfers{{
				Sender:    account,
				Recipient: vaultAddr,
				Amount:    big.NewInt(int64(i)),
			}},
		}))
	}

	router := mux.NewRouter()
	logs.New(db, testLimit).Mount(router, "")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func getEvents(t *testing.T, ts *httptest.Server, query string) []*logs.FilteredEvent {
	body, code := httpGet(t, ts.URL+"/events"+query)
	require.Equal(t, http.StatusOK, code, string(body))
	var fes []*logs.FilteredEvent
	require.NoError(t, json.Unmarshal(body, &fes))
	return fes
}

func TestFilterEvents(t *testing.T) {
	ts := initLogsServer(t)

	// the configured limit caps the default page
	fes := getEvents(t, ts, "")
	require.Len(t, fes, testLimit)
	assert.Equal(t, uint64(1), fes[0].Seq)
	assert.Equal(t, "staked", fes[0].Name)

	// second page
	fes = getEvents(t, ts, fmt.Sprintf("?offset=%d&limit=%d", testLimit, testLimit))
	require.Len(t, fes, testLimit)
	assert.Equal(t, uint64(testLimit+1), fes[0].Seq)

	// by account
	fes = getEvents(t, ts, "?account="+alice.String())
	require.Len(t, fes, testLimit)
	for _, fe := range fes {
		assert.Equal(t, alice, fe.Account)
	}

	// by range, newest first
	fes = getEvents(t, ts, "?from=5&to=8&order=desc")
	require.Len(t, fes, 4)
	assert.Equal(t, uint64(8), fes[0].Ts)
	assert.Equal(t, uint64(5), fes[3].Ts)

	// open-ended from
	fes = getEvents(t, ts, "?from=15")
	require.Len(t, fes, 6)
	assert.Equal(t, uint64(15), fes[0].Ts)
}

func TestFilterEventsRejects(t *testing.T) {
	ts := initLogsServer(t)

	_, code := httpGet(t, ts.URL+"/events?limit=11")
	assert.Equal(t, http.StatusForbidden, code)

	_, code = httpGet(t, ts.URL+"/events?from=9&to=3")
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpGet(t, ts.URL+"/events?order=sideways")
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpGet(t, ts.URL+"/events?account=nonsense")
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpGet(t, ts.URL+"/events?offset=x")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFilterTransfers(t *testing.T) {
	ts := initLogsServer(t)

	body, code := httpGet(t, ts.URL+"/transfers?account="+bob.String())
	require.Equal(t, http.StatusOK, code)

	var fts []*logs.FilteredTransfer
	require.NoError(t, json.Unmarshal(body, &fts))
	require.Len(t, fts, testLimit)
	for _, ft := range fts {
		assert.Equal(t, bob, ft.Sender)
		assert.Equal(t, vaultAddr, ft.Recipient)
	}

	// the vault is the recipient of every transfer
	body, _ = httpGet(t, ts.URL+"/transfers?account="+vaultAddr.String()+"&order=desc&limit=5")
	require.NoError(t, json.Unmarshal(body, &fts))
	require.Len(t, fts, 5)
	assert.Equal(t, uint64(20), fts[0].Ts)
}
