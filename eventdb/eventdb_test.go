// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GildCoinDev/gild-crypto/eventdb"
	"github.com/GildCoinDev/gild-crypto/events"
	"github.com/GildCoinDev/gild-crypto/gild"
)

var (
	vaultAddr = gild.BytesToAddress([]byte("vault"))
	alice     = gild.BytesToAddress([]byte("alice"))
	bob       = gild.BytesToAddress([]byte("bob"))
)

func newTestDB(t *testing.T) *eventdb.EventDB {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func stakeOutput(account gild.Address, amount int64) *events.Output {
	return &events.Output{
		Events: events.Events{{
			Address: vaultAddr,
			Name:    "staked",
			Account: account,
			Amount:  big.NewInt(amount),
		}},
		Transfers: events.Transfers{{
			Sender:    account,
			Recipient: vaultAddr,
			Amount:    big.NewInt(amount),
		}},
	}
}

func TestAppendAndFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Append(1000, stakeOutput(alice, 100)))
	require.NoError(t, db.Append(2000, stakeOutput(bob, 200)))
	require.NoError(t, db.Append(3000, &events.Output{
		Events: events.Events{{
			Address: vaultAddr,
			Name:    "reward_claimed",
			Account: alice,
			Amount:  big.NewInt(12),
		}},
	}))

	all, err := db.FilterEvents(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, uint64(1), all[0].Seq)
	assert.Equal(t, uint64(1000), all[0].Ts)
	assert.Equal(t, "staked", all[0].Name)
	assert.Equal(t, alice, all[0].Account)
	assert.Equal(t, big.NewInt(100), all[0].Amount)

	byName, err := db.FilterEvents(ctx, &eventdb.Filter{Names: []string{"staked"}})
	require.NoError(t, err)
	require.Len(t, byName, 2)

	byAccount, err := db.FilterEvents(ctx, &eventdb.Filter{Account: &alice})
	require.NoError(t, err)
	require.Len(t, byAccount, 2)
	assert.Equal(t, "staked", byAccount[0].Name)
	assert.Equal(t, "reward_claimed", byAccount[1].Name)

	ranged, err := db.FilterEvents(ctx, &eventdb.Filter{Range: &eventdb.Range{From: 1500, To: 2500}})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, bob, ranged[0].Account)

	desc, err := db.FilterEvents(ctx, &eventdb.Filter{Order: eventdb.DESC})
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, uint64(3), desc[0].Seq)

	paged, err := db.FilterEvents(ctx, &eventdb.Filter{Options: &eventdb.Options{Offset: 1, Limit: 1}})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, uint64(2), paged[0].Seq)
}

func TestAppendAtomic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Append(1000, nil))
	require.NoError(t, db.Append(1000, &events.Output{}))

	n, err := db.CountEvents(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFilterTransfers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Append(1000, stakeOutput(alice, 100)))
	require.NoError(t, db.Append(2000, &events.Output{
		Transfers: events.Transfers{{
			Sender:    vaultAddr,
			Recipient: alice,
			Amount:    big.NewInt(40),
		}},
	}))
	require.NoError(t, db.Append(3000, stakeOutput(bob, 200)))

	all, err := db.FilterTransfers(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// account matches either side of the movement
	mine, err := db.FilterTransfers(ctx, &eventdb.TransferFilter{Account: &alice})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, alice, mine[0].Sender)
	assert.Equal(t, alice, mine[1].Recipient)

	n, err := db.CountTransfers(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)
}

func TestEventsAfter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := int64(1); i <= 10; i++ {
		require.NoError(t, db.Append(uint64(i*1000), stakeOutput(alice, i)))
	}

	newest, err := db.NewestEventSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), newest)

	page, err := db.EventsAfter(ctx, 4, 3)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, uint64(5), page[0].Seq)
	assert.Equal(t, uint64(7), page[2].Seq)

	tail, err := db.EventsAfter(ctx, 9, 100)
	require.NoError(t, err)
	require.Len(t, tail, 1)

	empty, err := db.EventsAfter(ctx, 10, 100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNewestEventSeqEmpty(t *testing.T) {
	db := newTestDB(t)

	seq, err := db.NewestEventSeq(context.Background())
	require.NoError(t, err)
	assert.Zero(t, seq)
}

func TestPurge(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Append(1000, stakeOutput(alice, 100)))
	require.NoError(t, db.Append(2000, stakeOutput(bob, 200)))
	require.NoError(t, db.Purge())

	nEvents, err := db.CountEvents(ctx)
	require.NoError(t, err)
	assert.Zero(t, nEvents)
	nTransfers, err := db.CountTransfers(ctx)
	require.NoError(t, err)
	assert.Zero(t, nTransfers)

	// numbering restarts after a purge
	require.NoError(t, db.Append(3000, stakeOutput(alice, 300)))
	evs, err := db.FilterEvents(ctx, nil)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, uint64(1), evs[0].Seq)
}
