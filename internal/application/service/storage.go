package service

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is a durable store of named string blobs. One key holds one
// serialized JSON document. Implementations must be safe for concurrent use.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
