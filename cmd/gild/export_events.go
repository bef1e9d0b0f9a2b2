// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	pb "gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/GildCoinDev/gild-crypto/eventdb"
)

// events fetched per page while streaming the history out
const exportPageSize = 2048

func exportEventsAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse verbosity flag")
	}
	initLogger(lvl, ctx.Bool(jsonLogsFlag.Name))

	gene := selectGenesis(ctx)
	instanceDir := makeInstanceDir(ctx, gene)
	eventDB := openEventDB(instanceDir)
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	out := ctx.String(exportOutFlag.Name)
	f, err := os.Create(out)
	if err != nil {
		return errors.Wrapf(err, "create export file [%v]", out)
	}
	defer f.Close()

	n, err := exportEvents(handleExitSignal(), eventDB, f)
	if err != nil {
		return err
	}
	logger.Info("events exported", "file", out, "count", n)
	return nil
}

// exportEvents streams the whole committed event history to w, one JSON
// object per line, paging by sequence number.
func exportEvents(ctx context.Context, eventDB *eventdb.EventDB, w io.Writer) (uint64, error) {
	total, err := eventDB.CountEvents(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "count events")
	}
	if total == 0 {
		return 0, nil
	}

	fmt.Println(">> Exporting events <<")
	bar := pb.New64(int64(total)).
		SetMaxWidth(90).
		Start()

	defer func() { bar.NotPrint = true }()

	enc := json.NewEncoder(w)

	var (
		seq      uint64
		exported uint64
	)
	for {
		evs, err := eventDB.EventsAfter(ctx, seq, exportPageSize)
		if err != nil {
			return exported, err
		}
		if len(evs) == 0 {
			break
		}
		for _, ev := range evs {
			if err := enc.Encode(ev); err != nil {
				return exported, err
			}
			seq = ev.Seq
			exported++
			bar.Add64(1)
		}
		select {
		case <-ctx.Done():
			return exported, ctx.Err()
		default:
		}
	}
	bar.Finish()
	return exported, nil
}

func purgeAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse verbosity flag")
	}
	initLogger(lvl, ctx.Bool(jsonLogsFlag.Name))

	gene := selectGenesis(ctx)
	instanceDir := makeInstanceDir(ctx, gene)
	eventDB := openEventDB(instanceDir)
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	events, err := eventDB.CountEvents(context.Background())
	if err != nil {
		return errors.Wrap(err, "count events")
	}
	transfers, err := eventDB.CountTransfers(context.Background())
	if err != nil {
		return errors.Wrap(err, "count transfers")
	}
	if err := eventDB.Purge(); err != nil {
		return errors.Wrap(err, "purge event history")
	}
	logger.Info("event history purged", "events", events, "transfers", transfers)
	return nil
}
