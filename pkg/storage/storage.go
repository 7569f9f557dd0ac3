// Package storage holds the durable snapshot slots the storefront keeps
// between runs: one slot per concern (cart, session), addressed by a fixed
// logical key. A single process is assumed to be the only writer; when two
// processes share a backend the last writer wins, which matches the
// browser-profile behavior this replaces.
package storage

import (
	"context"
	"errors"
)

// Keys for the snapshot slots the client persists.
const (
	KeyCart    = "cart"
	KeySession = "session"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store is the durable key-value slot behind snapshot persistence.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, keys ...string) error
	Close() error
}
