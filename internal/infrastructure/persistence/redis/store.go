// Package redis is a Redis-backed persistence.KVStore.
package redis

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/fbsn11/team-management-app/internal/infrastructure/persistence"
)

type Store struct {
	client *redis.Client
	cfg    Config
}

var _ persistence.KVStore = (*Store)(nil)

// New connects and pings the server.
func New(ctx context.Context, cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, crerr.Wrap(err, "parse redis url")
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrap(err, "ping redis")
	}

	return NewWithClient(client, cfg), nil
}

func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{client: client, cfg: cfg}
}

func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, documentKey(key), value, s.cfg.TTL).Err(); err != nil {
		return crerr.Wrapf(err, "redis set %s", key)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, documentKey(key)).Bytes()
	if err != nil {
		if crerr.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "redis get %s", key)
	}
	return raw, true, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
