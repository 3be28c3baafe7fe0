package dummydb

import (
	"context"
	"sync"

	"github.com/trezcool/masomo-apply/core"
)

// DB is an in-memory core.Storage. Used by the "memory" driver and in tests.
type DB struct {
	sync.RWMutex
	table map[string][]byte
	saves int
}

var _ core.Storage = (*DB)(nil) // interface compliance check

func Open() (*DB, error) {
	return &DB{table: make(map[string][]byte)}, nil
}

func (db *DB) Load(_ context.Context, key string) ([]byte, error) {
	db.RLock()
	defer db.RUnlock()

	data, ok := db.table[key]
	if !ok {
		return nil, core.ErrNoData
	}
	return append([]byte(nil), data...), nil
}

// Save fails with ctx.Err() once ctx is done, like the sql and redis drivers.
func (db *DB) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db.Lock()
	defer db.Unlock()

	db.table[key] = append([]byte(nil), data...)
	db.saves++
	return nil
}

// Saves returns how many times Save was called.
func (db *DB) Saves() int {
	db.RLock()
	defer db.RUnlock()
	return db.saves
}

func (db *DB) Close() error { return nil }

// FailingDB loads from an embedded DB but refuses every Save, like a browser storage over quota.
type FailingDB struct {
	*DB
	Err error
}

var _ core.Storage = (*FailingDB)(nil)

func OpenFailing(err error) *FailingDB {
	db, _ := Open()
	return &FailingDB{DB: db, Err: err}
}

func (db *FailingDB) Save(context.Context, string, []byte) error {
	return db.Err
}
