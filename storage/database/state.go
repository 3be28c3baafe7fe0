package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-apply/core"
)

const (
	loadStateQuery = `SELECT payload FROM store_state WHERE state_key = ?`
	saveStateQuery = `INSERT INTO store_state (state_key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (state_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
)

// StateStorage is a core.Storage keeping one row per store key.
type StateStorage struct {
	db   *sqlx.DB
	load string
	save string
}

var _ core.Storage = (*StateStorage)(nil) // interface compliance check

func NewStateStorage(db *sqlx.DB) *StateStorage {
	return &StateStorage{
		db:   db,
		load: db.Rebind(loadStateQuery),
		save: db.Rebind(saveStateQuery),
	}
}

func (s *StateStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var payload string
	if err := s.db.GetContext(ctx, &payload, s.load, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrNoData
		}
		return nil, errors.Wrapf(err, "loading state %q", key)
	}
	return []byte(payload), nil
}

func (s *StateStorage) Save(ctx context.Context, key string, data []byte) error {
	if _, err := s.db.ExecContext(ctx, s.save, key, string(data), core.NowFunc()); err != nil {
		return errors.Wrapf(err, "saving state %q", key)
	}
	return nil
}

func (s *StateStorage) Close() error { return s.db.Close() }
