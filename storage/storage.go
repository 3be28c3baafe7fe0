package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-apply/core"
	"github.com/trezcool/masomo-apply/storage/database"
	dummydb "github.com/trezcool/masomo-apply/storage/database/dummy"
	"github.com/trezcool/masomo-apply/storage/redisdb"
)

// Open returns the core.Storage selected by conf.Storage.Driver, ready for use.
func Open(ctx context.Context, conf *core.Config) (core.Storage, error) {
	switch conf.Storage.Driver {
	case core.StorageMemory:
		return dummydb.Open()
	case core.StorageSQLite, core.StoragePostgres:
		db, err := database.Setup(ctx, conf)
		if err != nil {
			return nil, errors.Wrap(err, "setting up database")
		}
		return database.NewStateStorage(db), nil
	case core.StorageRedis:
		st := redisdb.Open(conf)
		if err := st.Ping(ctx); err != nil {
			_ = st.Close()
			return nil, err
		}
		return st, nil
	}
	return nil, errors.Errorf("unknown storage driver %q", conf.Storage.Driver)
}
