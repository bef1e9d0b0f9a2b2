// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/GildCoinDev/gild-crypto/api"
	"github.com/GildCoinDev/gild-crypto/cmd/gild/httpserver"
	"github.com/GildCoinDev/gild-crypto/eventdb"
	"github.com/GildCoinDev/gild-crypto/kv"
	"github.com/GildCoinDev/gild-crypto/ledger"
	"github.com/GildCoinDev/gild-crypto/log"
	"github.com/GildCoinDev/gild-crypto/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "cmd")
)

// committed events buffered per subscription before slow readers are dropped
const subsCacheSize = 1024

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Gild",
		Usage:     "Node of GildCoin",
		Copyright: "2025 GildCoin <https://github.com/GildCoinDev>",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			pprofFlag,
			cacheFlag,
			budgetFlag,
			inflationAutoFlag,
			persistFlag,
			enableMetricsFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "export-events",
				Usage: "export committed event history to a JSON lines file",
				Flags: []cli.Flag{
					dataDirFlag,
					genesisFlag,
					verbosityFlag,
					jsonLogsFlag,
					exportOutFlag,
				},
				Action: exportEventsAction,
			},
			{
				Name:  "purge",
				Usage: "drop committed event history, keeping ledger state",
				Flags: []cli.Flag{
					dataDirFlag,
					genesisFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: purgeAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse verbosity flag")
	}
	logLevel := initLogger(lvl, ctx.Bool(jsonLogsFlag.Name))

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene := selectGenesis(ctx)

	var (
		mainDB      *kv.LevelDB
		eventDB     *eventdb.EventDB
		instanceDir string
	)
	if ctx.Bool(persistFlag.Name) {
		instanceDir = makeInstanceDir(ctx, gene)
		mainDB = openMainDB(ctx, instanceDir)
		eventDB = openEventDB(instanceDir)
	} else {
		instanceDir = "Memory"
		mainDB = openMemMainDB()
		eventDB = openMemEventDB()
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	led, err := ledger.Open(mainDB, eventDB, gene, ledger.Options{
		Budget: ctx.Uint64(budgetFlag.Name),
	})
	if err != nil {
		return errors.Wrap(err, "open ledger")
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	apiHandler, apiClose := api.New(led, api.Options{
		AllowedOrigins: ctx.String(apiCorsFlag.Name),
		LogsLimit:      ctx.Uint64(apiLogsLimitFlag.Name),
		SubsCacheSize:  subsCacheSize,
		PprofOn:        ctx.Bool(pprofFlag.Name),
		EnableMetrics:  ctx.Bool(enableMetricsFlag.Name),
		APILogs:        apiLogs,
	})
	defer func() { logger.Info("closing API..."); apiClose() }()

	apiURL, srvClose := startAPIServer(ctx, apiHandler, gene.ID())
	defer func() { logger.Info("stopping API server..."); srvClose() }()

	adminURL := ""
	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, led, apiLogs)
		if err != nil {
			return errors.Wrap(err, "start admin server")
		}
		adminURL = url
		defer func() { logger.Info("stopping admin server..."); closeFunc() }()
	}

	printStartupMessage(gene, instanceDir, apiURL, adminURL)

	group, groupCtx := errgroup.WithContext(handleExitSignal())
	group.Go(func() error {
		return houseKeeping(groupCtx, led, time.Duration(ctx.Uint64(inflationAutoFlag.Name))*time.Second)
	})
	group.Go(func() error {
		return watchClockOffset(groupCtx)
	})
	return group.Wait()
}
