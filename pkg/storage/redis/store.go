// Package redis backs the snapshot store with a Redis instance, for setups
// where the storefront state should survive the local filesystem (kiosks,
// containers).
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/tutienda/storefront/pkg/config"
	"github.com/tutienda/storefront/pkg/storage"
)

const (
	keyNamespace   = "tienda"
	snapshotPrefix = "snapshot"
)

type cmdable interface {
	Ping(context.Context) *redislib.StatusCmd
	Set(context.Context, string, any, time.Duration) *redislib.StatusCmd
	Get(context.Context, string) *redislib.StringCmd
	Del(context.Context, ...string) *redislib.IntCmd
}

// Store adapts a Redis connection to the snapshot storage contract.
type Store struct {
	store cmdable
	raw   *redislib.Client
}

// New bootstraps a Redis-backed store and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig) (*Store, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redislib.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Store{store: raw, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redislib.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redislib.Options
	if cfg.URL != "" {
		parsed, err := redislib.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redislib.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.store == nil {
		return nil, errors.New("redis store not initialized")
	}
	raw, err := s.store.Get(ctx, s.snapshotKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.store == nil {
		return errors.New("redis store not initialized")
	}
	return s.store.Set(ctx, s.snapshotKey(key), value, 0).Err()
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	if s.store == nil {
		return errors.New("redis store not initialized")
	}
	namespaced := make([]string, 0, len(keys))
	for _, key := range keys {
		namespaced = append(namespaced, s.snapshotKey(key))
	}
	return s.store.Del(ctx, namespaced...).Err()
}

// Close shuts down the underlying client if available.
func (s *Store) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}

func (s *Store) snapshotKey(key string) string {
	return strings.Join([]string{keyNamespace, snapshotPrefix, strings.TrimSpace(key)}, ":")
}
