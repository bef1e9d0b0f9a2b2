// Copyright (c) 2024 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	writeOpt = &opt.WriteOptions{}
	readOpt  = &opt.ReadOptions{}
)

const bulkFlushThreshold = 8192 // entries buffered before an auto-flushing bulk writes out

// Options options for opening the persistent store.
type Options struct {
	CacheSize      int // in MB
	OpenFilesLimit int
}

// LevelDB leveldb backed Store implementation.
type LevelDB struct {
	db *leveldb.DB
}

func openLevelDB(stg storage.Storage, cacheSize, openFilesLimit int) (*LevelDB, error) {
	if cacheSize < 16 {
		cacheSize = 16
	}
	if openFilesLimit < 64 {
		openFilesLimit = 64
	}

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: openFilesLimit,
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB, // two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &LevelDB{db: db}, nil
}

// New opens or creates the persistent store at the given path.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "open leveldb storage")
	}
	ldb, err := openLevelDB(stg, opts.CacheSize, opts.OpenFilesLimit)
	if err != nil {
		stg.Close()
		return nil, err
	}
	return ldb, nil
}

// NewMem creates a memory backed store, mainly for tests.
func NewMem() (*LevelDB, error) {
	ldb, err := openLevelDB(storage.NewMemStorage(), 16, 0)
	if err != nil {
		return nil, errors.Wrap(err, "open mem leveldb")
	}
	return ldb, nil
}

func (l *LevelDB) Get(key []byte) ([]byte, error) {
	return l.db.Get(key, readOpt)
}

func (l *LevelDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, readOpt)
}

func (l *LevelDB) IsNotFound(err error) bool {
	return err == leveldb.ErrNotFound
}

func (l *LevelDB) Put(key, val []byte) error {
	return l.db.Put(key, val, writeOpt)
}

func (l *LevelDB) Delete(key []byte) error {
	return l.db.Delete(key, writeOpt)
}

// Snapshot creates a read snapshot. It must be released after use.
func (l *LevelDB) Snapshot() Snapshot {
	s, err := l.db.GetSnapshot()
	return &lvldbSnapshot{s, err}
}

// Bulk creates a bulk putter. Writes are buffered until Write is called,
// or flushed in chunks when auto flush is enabled.
func (l *LevelDB) Bulk() Bulk {
	return &lvldbBulk{db: l.db}
}

func (l *LevelDB) Iterate(r Range) Iterator {
	return l.db.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, readOpt)
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}

type lvldbSnapshot struct {
	snapshot *leveldb.Snapshot
	err      error
}

func (s *lvldbSnapshot) Get(key []byte) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot.Get(key, readOpt)
}

func (s *lvldbSnapshot) Has(key []byte) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.snapshot.Has(key, readOpt)
}

func (s *lvldbSnapshot) IsNotFound(err error) bool {
	return err == leveldb.ErrNotFound
}

func (s *lvldbSnapshot) Release() {
	if s.err == nil {
		s.snapshot.Release()
	}
}

type lvldbBulk struct {
	db        *leveldb.DB
	batch     leveldb.Batch
	autoFlush bool
}

func (b *lvldbBulk) Put(key, val []byte) error {
	b.batch.Put(key, val)
	return b.maybeFlush()
}

func (b *lvldbBulk) Delete(key []byte) error {
	b.batch.Delete(key)
	return b.maybeFlush()
}

// EnableAutoFlush makes the bulk non-atomic.
func (b *lvldbBulk) EnableAutoFlush() {
	b.autoFlush = true
}

func (b *lvldbBulk) maybeFlush() error {
	if b.autoFlush && b.batch.Len() >= bulkFlushThreshold {
		return b.Write()
	}
	return nil
}

func (b *lvldbBulk) Write() error {
	if b.batch.Len() == 0 {
		return nil
	}
	if err := b.db.Write(&b.batch, writeOpt); err != nil {
		return errors.Wrap(err, "bulk write")
	}
	b.batch.Reset()
	return nil
}
