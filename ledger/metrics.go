// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "github.com/GildCoinDev/gild-crypto/metrics"

var (
	metricOpCount    = metrics.LazyLoadCounterVec("ledger_operation_count", []string{"op", "outcome"})
	metricOpDuration = metrics.LazyLoadHistogramVec("ledger_operation_duration_ms", []string{"op"}, metrics.Bucket10s)
	metricBudgetUsed = metrics.LazyLoadHistogram("ledger_operation_budget_used",
		[]int64{0, 1000, 5000, 10_000, 25_000, 50_000, 100_000, 250_000, 500_000, 1_000_000})
	metricEventsAppended = metrics.LazyLoadCounter("ledger_events_appended_count")
)
