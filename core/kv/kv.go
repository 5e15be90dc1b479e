// Package kv provides the durable per-visitor key-value storage the cart
// persists into. It is the server-side analogue of a browser's localStorage:
// synchronous-enough get/set of small JSON blobs, last writer wins.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store is a flat key-value store for small serialized payloads.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
