// Package metadata is a small key/value store for local bookkeeping values
// such as the last successful sync timestamp. Never synced, never exported.
package metadata

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
