// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/GildCoinDev/gild-crypto/api/restutil"
	"github.com/GildCoinDev/gild-crypto/eventdb"
	"github.com/GildCoinDev/gild-crypto/gild"
)

// Logs queries the committed event and transfer history.
type Logs struct {
	db    *eventdb.EventDB
	limit uint64
}

func New(db *eventdb.EventDB, logsLimit uint64) *Logs {
	return &Logs{
		db,
		logsLimit,
	}
}

// parseCommon extracts the range, order and pagination shared by both
// history endpoints. The page limit defaults to, and is capped at, the
// configured maximum.
func (l *Logs) parseCommon(query url.Values) (*eventdb.Range, *eventdb.Options, eventdb.OrderType, error) {
	var rng *eventdb.Range
	if query.Get("from") != "" || query.Get("to") != "" {
		rng = &eventdb.Range{To: eventdb.MaxTs}
		if v := query.Get("from"); v != "" {
			from, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return nil, nil, "", restutil.BadRequest(errors.WithMessage(err, "from"))
			}
			rng.From = from
		}
		if v := query.Get("to"); v != "" {
			to, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return nil, nil, "", restutil.BadRequest(errors.WithMessage(err, "to"))
			}
			rng.To = to
		}
		if rng.To < rng.From {
			return nil, nil, "", restutil.BadRequest(errors.New("to must be greater than or equal to from"))
		}
	}

	options := &eventdb.Options{Limit: l.limit}
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, nil, "", restutil.BadRequest(errors.WithMessage(err, "offset"))
		}
		options.Offset = offset
	}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, nil, "", restutil.BadRequest(errors.WithMessage(err, "limit"))
		}
		if limit > l.limit {
			return nil, nil, "", restutil.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", l.limit))
		}
		options.Limit = limit
	}

	order := eventdb.ASC
	switch query.Get("order") {
	case "", "asc":
	case "desc":
		order = eventdb.DESC
	default:
		return nil, nil, "", restutil.BadRequest(errors.New("order: expected asc or desc"))
	}
	return rng, options, order, nil
}

func (l *Logs) handleFilterEvents(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	rng, options, order, err := l.parseCommon(query)
	if err != nil {
		return err
	}

	filter := &eventdb.Filter{
		Names:   query["name"],
		Order:   order,
		Range:   rng,
		Options: options,
	}
	if v := query.Get("account"); v != "" {
		addr, err := gild.ParseAddress(v)
		if err != nil {
			return restutil.BadRequest(errors.WithMessage(err, "account"))
		}
		filter.Account = &addr
	}

	events, err := l.db.FilterEvents(r.Context(), filter)
	if err != nil {
		return err
	}
	fes := make([]*FilteredEvent, len(events))
	for i, ev := range events {
		fes[i] = convertEvent(ev)
	}
	return restutil.WriteJSON(w, fes)
}

func (l *Logs) handleFilterTransfers(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	rng, options, order, err := l.parseCommon(query)
	if err != nil {
		return err
	}

	filter := &eventdb.TransferFilter{
		Order:   order,
		Range:   rng,
		Options: options,
	}
	if v := query.Get("account"); v != "" {
		addr, err := gild.ParseAddress(v)
		if err != nil {
			return restutil.BadRequest(errors.WithMessage(err, "account"))
		}
		filter.Account = &addr
	}

	transfers, err := l.db.FilterTransfers(r.Context(), filter)
	if err != nil {
		return err
	}
	fts := make([]*FilteredTransfer, len(transfers))
	for i, tr := range transfers {
		fts[i] = convertTransfer(tr)
	}
	return restutil.WriteJSON(w, fts)
}

func (l *Logs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").
		Methods(http.MethodGet).
		Name("logs_get_events").
		HandlerFunc(restutil.WrapHandlerFunc(l.handleFilterEvents))
	sub.Path("/transfers").
		Methods(http.MethodGet).
		Name("logs_get_transfers").
		HandlerFunc(restutil.WrapHandlerFunc(l.handleFilterTransfers))
}
