package redisdb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/trezcool/masomo-apply/core"
)

const keyPrefix = "masomo:state:"

// Storage is a core.Storage keeping each store's state under its own Redis key.
type Storage struct {
	client *redis.Client
}

var _ core.Storage = (*Storage)(nil) // interface compliance check

func Open(conf *core.Config) *Storage {
	return NewStorage(redis.NewClient(&redis.Options{
		Addr:         conf.Storage.RedisAddr,
		DB:           conf.Storage.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}))
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{client: client}
}

// Ping tests the Redis connection
func (s *Storage) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "redis ping failed")
	}
	return nil
}

func (s *Storage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, core.ErrNoData
		}
		return nil, errors.Wrapf(err, "loading state %q", key)
	}
	return data, nil
}

func (s *Storage) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, keyPrefix+key, data, 0).Err(); err != nil {
		return errors.Wrapf(err, "saving state %q", key)
	}
	return nil
}

func (s *Storage) Close() error { return s.client.Close() }
