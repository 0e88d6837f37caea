// Package storage provides persistence primitives over a single logical
// table of items keyed by a string primary key.
package storage

import (
	"context"
)

// Table is the entity store contract shared by every backend.
//
// Update merges the named attributes into an existing item and returns the
// item as stored afterwards. Update and Delete return errors.ErrNotFound
// when the key does not exist; Delete is therefore not idempotent.
type Table[T any] interface {
	Put(ctx context.Context, item T) error
	Get(ctx context.Context, key string) (T, error)
	Scan(ctx context.Context) ([]T, error)
	Update(ctx context.Context, key string, fields map[string]any) (T, error)
	Delete(ctx context.Context, key string) error
}
