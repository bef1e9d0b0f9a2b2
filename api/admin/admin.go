// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/GildCoinDev/gild-crypto/api/admin/apilogs"
	"github.com/GildCoinDev/gild-crypto/api/admin/health"
	"github.com/GildCoinDev/gild-crypto/api/admin/loglevel"
)

func New(logLevel *slog.LevelVar, healthStatus *health.Health, apiLogsEnabled *atomic.Bool) http.HandlerFunc {
	router := mux.NewRouter()
	subRouter := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(subRouter, "/loglevel")
	health.NewAPI(healthStatus).Mount(subRouter, "/health")
	apilogs.New(apiLogsEnabled).Mount(subRouter, "/apilogs")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
