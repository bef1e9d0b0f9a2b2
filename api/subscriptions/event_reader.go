// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"context"
	"encoding/json"

	"github.com/GildCoinDev/gild-crypto/eventdb"
)

// feedBatch events pulled from the history per read. A reader reporting
// hasMore is drained again before the connection goes back to waiting.
const feedBatch = 64

// eventReader pages committed events out of the history, remembering
// the sequence number it has reached. Undelivered events sit in the
// history rather than in memory, so a slow consumer lags instead of
// dropping messages.
type eventReader struct {
	db     *eventdb.EventDB
	filter *EventFilter
	cache  *messageCache
	pos    uint64
}

func newEventReader(db *eventdb.EventDB, cache *messageCache, position uint64, filter *EventFilter) *eventReader {
	return &eventReader{
		db:     db,
		filter: filter,
		cache:  cache,
		pos:    position,
	}
}

func (er *eventReader) Read(ctx context.Context) ([][]byte, bool, error) {
	events, err := er.db.EventsAfter(ctx, er.pos, feedBatch)
	if err != nil {
		return nil, false, err
	}
	var msgs [][]byte
	for _, ev := range events {
		er.pos = ev.Seq
		if !er.filter.match(ev) {
			continue
		}
		msg, _, err := er.cache.GetOrAdd(ev.Seq, func() ([]byte, error) {
			return json.Marshal(convertEvent(ev))
		})
		if err != nil {
			return nil, false, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, len(events) == feedBatch, nil
}
