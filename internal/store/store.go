// ABOUTME: KV interface and errors for portfolio-admin persistence
// ABOUTME: Defines the durable key-value contract both managers write through

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested key does not exist.
var ErrNotFound = errors.New("not found")

// KV is the durable key-value store backing the session manager and the
// content store. Values are opaque strings; callers decide their encoding.
// Delete is idempotent: deleting an absent key is not an error.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
