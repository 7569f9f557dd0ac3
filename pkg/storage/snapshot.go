package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/tutienda/storefront/pkg/logger"
)

// Load reads and decodes the snapshot at key. Missing keys, decode failures,
// and backend errors all degrade to the zero value: persisted state is a
// best-effort cache, never the source of truth for the running process.
func Load[T any](ctx context.Context, store Store, key string, logg *logger.Logger) T {
	var value T
	raw, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && logg != nil {
			logg.Warn(logg.WithField(ctx, "key", key), "snapshot load failed, starting empty")
		}
		return value
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		if logg != nil {
			logg.Warn(logg.WithField(ctx, "key", key), "snapshot is corrupt, starting empty")
		}
		var zero T
		return zero
	}
	return value
}

// Save encodes and writes the snapshot at key. Failures are logged and
// swallowed; the caller's in-memory state stays authoritative.
func Save[T any](ctx context.Context, store Store, key string, value T, logg *logger.Logger) {
	raw, err := json.Marshal(value)
	if err != nil {
		if logg != nil {
			logg.Error(logg.WithField(ctx, "key", key), "snapshot encode failed", err)
		}
		return
	}
	if err := store.Set(ctx, key, raw); err != nil {
		if logg != nil {
			logg.Warn(logg.WithField(ctx, "key", key), "snapshot write failed, continuing in memory")
		}
	}
}

// Drop deletes the snapshot at key, swallowing failures the same way Save
// does.
func Drop(ctx context.Context, store Store, key string, logg *logger.Logger) {
	if err := store.Del(ctx, key); err != nil && logg != nil {
		logg.Warn(logg.WithField(ctx, "key", key), "snapshot delete failed")
	}
}
