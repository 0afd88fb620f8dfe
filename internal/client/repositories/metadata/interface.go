// Package metadata is the local key/value repository backing durable client
// state such as the session token.
package metadata

import (
	"context"
)

// Item is one stored key/value pair.
type Item struct {
	Key   string
	Value string
}

// Repository stores string values under string keys.
type Repository interface {
	// Get reports ok=false for a missing key.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
	// Delete removes every given key; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	// List returns all items ordered by key.
	List(ctx context.Context) ([]Item, error)
}
