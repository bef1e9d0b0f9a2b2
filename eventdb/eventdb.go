// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"context"
	"database/sql"
	"math"
	"math/big"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/GildCoinDev/gild-crypto/events"
	"github.com/GildCoinDev/gild-crypto/gild"
)

// OrderType sort direction of filter results.
type OrderType string

const (
	ASC  OrderType = "ASC"
	DESC OrderType = "DESC"
)

// MaxTs the highest usable range bound. SQLite stores integers signed,
// anything above would fail to bind.
const MaxTs = uint64(math.MaxInt64)

// Range bounds results by operation timestamp, inclusive on both ends.
type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// Options pagination.
type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter criteria for querying recorded events.
type Filter struct {
	Names   []string      `json:"names"`   // matches any of the given event names
	Account *gild.Address `json:"account"` // subject account
	Order   OrderType     `json:"order"`   // default asc
	Range   *Range        `json:"range"`
	Options *Options      `json:"options"`
}

// TransferFilter criteria for querying recorded transfers.
type TransferFilter struct {
	Account *gild.Address `json:"account"` // matches sender or recipient
	Order   OrderType     `json:"order"`
	Range   *Range        `json:"range"`
	Options *Options      `json:"options"`
}

// Event one committed module event, stamped with its insertion sequence
// and the timestamp of the operation that produced it.
type Event struct {
	Seq     uint64       `json:"seq"`
	Ts      uint64       `json:"ts"`
	Name    string       `json:"name"`
	Address gild.Address `json:"address"`
	Account gild.Address `json:"account"`
	Amount  *big.Int     `json:"amount"`
	Data    []byte       `json:"data"`
}

// Transfer one committed token movement.
type Transfer struct {
	Seq       uint64       `json:"seq"`
	Ts        uint64       `json:"ts"`
	Sender    gild.Address `json:"sender"`
	Recipient gild.Address `json:"recipient"`
	Amount    *big.Int     `json:"amount"`
}

// EventDB SQLite backed history of committed events and transfers.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

// New open an event db at the given path.
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(eventTableSchema + transferTableSchema); err != nil {
		return nil, err
	}
	s, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem create a memory sqlite db.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Append persists the output of one committed operation in a single
// transaction, stamping every row with ts.
func (db *EventDB) Append(ts uint64, output *events.Output) error {
	if output == nil || (len(output.Events) == 0 && len(output.Transfers) == 0) {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, ev := range output.Events {
		if _, err = tx.Exec("INSERT INTO event(ts, name, address, account, amount, data) VALUES(?, ?, ?, ?, ?, ?);",
			ts,
			ev.Name,
			ev.Address.Bytes(),
			ev.Account.Bytes(),
			amountValue(ev.Amount),
			ev.Data); err != nil {
			tx.Rollback()
			return err
		}
	}
	for _, tr := range output.Transfers {
		if _, err = tx.Exec("INSERT INTO transfer(ts, sender, recipient, amount) VALUES(?, ?, ?, ?);",
			ts,
			tr.Sender.Bytes(),
			tr.Recipient.Bytes(),
			amountValue(tr.Amount)); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// FilterEvents return events matching the filter, oldest first unless DESC.
func (db *EventDB) FilterEvents(ctx context.Context, filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT seq, ts, name, address, account, amount, data FROM event ORDER BY seq ASC")
	}
	var args []interface{}
	stmt := "SELECT seq, ts, name, address, account, amount, data FROM event WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND ts >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND ts <= ? "
		}
	}
	if len(filter.Names) > 0 {
		stmt += " AND name IN (?" + strings.Repeat(",?", len(filter.Names)-1) + ") "
		for _, name := range filter.Names {
			args = append(args, name)
		}
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ? "
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

// FilterTransfers return transfers matching the filter, oldest first unless DESC.
func (db *EventDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	if filter == nil {
		return db.queryTransfers(ctx, "SELECT seq, ts, sender, recipient, amount FROM transfer ORDER BY seq ASC")
	}
	var args []interface{}
	stmt := "SELECT seq, ts, sender, recipient, amount FROM transfer WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND ts >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND ts <= ? "
		}
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes(), filter.Account.Bytes())
		stmt += " AND (sender = ? OR recipient = ?) "
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryTransfers(ctx, stmt, args...)
}

// EventsAfter return up to limit events whose sequence number is greater
// than seq, oldest first. The subscription feed pages with this.
func (db *EventDB) EventsAfter(ctx context.Context, seq uint64, limit uint64) ([]*Event, error) {
	return db.queryEvents(ctx,
		"SELECT seq, ts, name, address, account, amount, data FROM event WHERE seq > ? ORDER BY seq ASC limit ?",
		seq, limit)
}

// NewestEventSeq return the sequence number of the most recent event, 0 when empty.
func (db *EventDB) NewestEventSeq(ctx context.Context) (uint64, error) {
	row := db.db.QueryRowContext(ctx, "SELECT ifnull(max(seq), 0) FROM event")
	var seq uint64
	if err := row.Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

// CountEvents total number of recorded events.
func (db *EventDB) CountEvents(ctx context.Context) (uint64, error) {
	row := db.db.QueryRowContext(ctx, "SELECT count(*) FROM event")
	var n uint64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountTransfers total number of recorded transfers.
func (db *EventDB) CountTransfers(ctx context.Context) (uint64, error) {
	row := db.db.QueryRowContext(ctx, "SELECT count(*) FROM transfer")
	var n uint64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Purge drops all recorded history, keeping the schema. Sequence
// numbering restarts from 1.
func (db *EventDB) Purge() error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, stmt := range []string{
		"DELETE FROM event;",
		"DELETE FROM transfer;",
		"DELETE FROM sqlite_sequence WHERE name IN ('event', 'transfer');",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (db *EventDB) queryEvents(ctx context.Context, stmt string, args ...interface{}) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evs []*Event
	for rows.Next() {
		var (
			seq     uint64
			ts      uint64
			name    string
			address []byte
			account []byte
			amount  []byte
			data    []byte
		)
		if err := rows.Scan(
			&seq,
			&ts,
			&name,
			&address,
			&account,
			&amount,
			&data,
		); err != nil {
			return nil, err
		}
		evs = append(evs, &Event{
			Seq:     seq,
			Ts:      ts,
			Name:    name,
			Address: gild.BytesToAddress(address),
			Account: gild.BytesToAddress(account),
			Amount:  new(big.Int).SetBytes(amount),
			Data:    data,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return evs, nil
}

func (db *EventDB) queryTransfers(ctx context.Context, stmt string, args ...interface{}) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		var (
			seq       uint64
			ts        uint64
			sender    []byte
			recipient []byte
			amount    []byte
		)
		if err := rows.Scan(
			&seq,
			&ts,
			&sender,
			&recipient,
			&amount,
		); err != nil {
			return nil, err
		}
		transfers = append(transfers, &Transfer{
			Seq:       seq,
			Ts:        ts,
			Sender:    gild.BytesToAddress(sender),
			Recipient: gild.BytesToAddress(recipient),
			Amount:    new(big.Int).SetBytes(amount),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

// Path return db's directory.
func (db *EventDB) Path() string {
	return db.path
}

// Close close sqlite.
func (db *EventDB) Close() {
	db.db.Close()
}

func amountValue(amount *big.Int) []byte {
	if amount == nil {
		return nil
	}
	return amount.Bytes()
}
