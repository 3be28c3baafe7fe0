package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-apply/core"
	"github.com/trezcool/masomo-apply/storage"
)

func testConfig(driver string) *core.Config {
	return &core.Config{Storage: core.StorageConfig{Driver: driver}}
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		conf func(t *testing.T) *core.Config
	}{
		{
			name: "memory",
			conf: func(t *testing.T) *core.Config { return testConfig(core.StorageMemory) },
		},
		{
			name: "sqlite",
			conf: func(t *testing.T) *core.Config {
				conf := testConfig(core.StorageSQLite)
				conf.Storage.DSN = "file:" + filepath.Join(t.TempDir(), "masomo.db")
				return conf
			},
		},
		{
			name: "redis",
			conf: func(t *testing.T) *core.Config {
				conf := testConfig(core.StorageRedis)
				conf.Storage.RedisAddr = mr.Addr()
				return conf
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			st, err := storage.Open(ctx, tt.conf(t))
			require.NoError(t, err)
			defer st.Close()

			_, err = st.Load(ctx, core.ProfileKey)
			assert.Equal(t, core.ErrNoData, errors.Cause(err))

			require.NoError(t, st.Save(ctx, core.ProfileKey, []byte(`{"v":1}`)))
			require.NoError(t, st.Save(ctx, core.ProfileKey, []byte(`{"v":2}`)))
			require.NoError(t, st.Save(ctx, core.ProgramsKey, []byte(`[]`)))

			got, err := st.Load(ctx, core.ProfileKey)
			require.NoError(t, err)
			assert.JSONEq(t, `{"v":2}`, string(got), "last save wins")

			got, err = st.Load(ctx, core.ProgramsKey)
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))
		})
	}
}

func TestOpen_errors(t *testing.T) {
	ctx := context.Background()

	_, err := storage.Open(ctx, testConfig("localStorage"))
	assert.EqualError(t, err, `unknown storage driver "localStorage"`)

	mr := miniredis.RunT(t)
	conf := testConfig(core.StorageRedis)
	conf.Storage.RedisAddr = mr.Addr()
	mr.Close()
	_, err = storage.Open(ctx, conf)
	assert.Error(t, err)
}

func TestOpen_sqlitePersists(t *testing.T) {
	ctx := context.Background()
	conf := testConfig(core.StorageSQLite)
	conf.Storage.DSN = "file:" + filepath.Join(t.TempDir(), "masomo.db")

	st, err := storage.Open(ctx, conf)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, core.DocumentsKey, []byte(`[{"id":"d1"}]`)))
	require.NoError(t, st.Close())

	// reopening runs the migrations again, which must be a no-op
	st, err = storage.Open(ctx, conf)
	require.NoError(t, err)
	defer st.Close()

	got, err := st.Load(ctx, core.DocumentsKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"d1"}]`, string(got))
}
