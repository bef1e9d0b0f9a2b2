// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"

	"github.com/GildCoinDev/gild-crypto/builtin/inflation"
	"github.com/GildCoinDev/gild-crypto/ledger"
)

// offsets beyond this suggest the host clock needs attention
const clockOffsetTolerance = 2 * time.Second

// houseKeeping drives the inflation schedule when --inflation-auto is
// set. Minting before a full interval elapsed is a no-op, so the
// cadence only bounds how stale the schedule can get.
func houseKeeping(ctx context.Context, led *ledger.Ledger, mintEvery time.Duration) error {
	logger.Debug("enter house keeping")
	defer logger.Debug("leave house keeping")

	var mintTick <-chan time.Time
	if mintEvery > 0 {
		ticker := time.NewTicker(mintEvery)
		defer ticker.Stop()
		mintTick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-mintTick:
			mintDueInflation(led)
		}
	}
}

func mintDueInflation(led *ledger.Ledger) {
	governor, err := led.Governor()
	if err != nil {
		logger.Warn("failed to read governor", "err", err)
		return
	}
	receipt, err := led.MintInflation(governor)
	if err != nil {
		logger.Warn("failed to mint inflation", "err", err)
		return
	}
	for _, ev := range receipt.Events {
		if ev.Name == inflation.EventInflationMinted {
			logger.Info("inflation minted", "amount", ev.Amount, "budgetUsed", receipt.BudgetUsed)
			return
		}
	}
	logger.Debug("no inflation due")
}

func watchClockOffset(ctx context.Context) error {
	go checkClockOffset()

	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			go checkClockOffset()
		}
	}
}

func checkClockOffset() {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	if resp.ClockOffset > clockOffsetTolerance || resp.ClockOffset < -clockOffsetTolerance {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}
