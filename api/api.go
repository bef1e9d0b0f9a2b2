// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/GildCoinDev/gild-crypto/api/doc"
	"github.com/GildCoinDev/gild-crypto/api/governance"
	"github.com/GildCoinDev/gild-crypto/api/logs"
	"github.com/GildCoinDev/gild-crypto/api/middleware"
	"github.com/GildCoinDev/gild-crypto/api/staking"
	"github.com/GildCoinDev/gild-crypto/api/subscriptions"
	"github.com/GildCoinDev/gild-crypto/ledger"
	"github.com/GildCoinDev/gild-crypto/log"
	"github.com/GildCoinDev/gild-crypto/metrics"
)

var logger = log.WithContext("pkg", "api")

// requests slower than this are logged even when request logging is off
const slowRequestThreshold = 2 * time.Second

type Options struct {
	AllowedOrigins string
	LogsLimit      uint64
	SubsCacheSize  uint32
	PprofOn        bool
	EnableMetrics  bool
	APILogs        *atomic.Bool
}

// New return api router
func New(ledger *ledger.Ledger, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	// to serve the openapi spec
	router.PathPrefix("/doc").Handler(
		http.StripPrefix("/doc/", http.FileServer(http.FS(doc.FS))),
	)
	router.Path("/").HandlerFunc(
		func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "doc/gild.yaml", http.StatusTemporaryRedirect)
		})

	staking.New(ledger).
		Mount(router, "/ledger")
	governance.New(ledger).
		Mount(router, "/governance")
	logs.New(ledger.EventDB(), opts.LogsLimit).
		Mount(router, "")
	subs := subscriptions.New(ledger, origins, opts.SubsCacheSize)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-genesis-id"}),
		handlers.ExposedHeaders([]string{"x-genesis-id", "x-gildest-ver"}),
	)(handler)

	if opts.APILogs != nil {
		handler = middleware.RequestLoggerMiddleware(logger, opts.APILogs, slowRequestThreshold, true)(handler)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
