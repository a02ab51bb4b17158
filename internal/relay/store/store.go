// Package store persists the relay's replicated rows: one row per
// (entity, entityId) pair holding the latest payload the relay has accepted.
// Conflict resolution is last-write-wins on updatedAt.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/models"
)

// Record is one replicated row. Payload is the full entity document as the
// client produced it; the relay never interprets it beyond the updatedAt
// comparison already carried in UpdatedAt.
type Record struct {
	Entity    models.EntityKind
	EntityID  string
	Payload   json.RawMessage
	UpdatedAt time.Time
}

// Store is the relay's persistence interface.
type Store interface {
	// Upsert applies the record if it is new or strictly newer than the
	// stored row. Returns whether the record was applied; a stale record is
	// a normal outcome, not an error.
	Upsert(ctx context.Context, rec Record) (bool, error)

	// List returns all rows, or only rows with updatedAt after since when
	// since is non-nil, ordered by entity then entityId.
	List(ctx context.Context, since *time.Time) ([]Record, error)

	// Status returns per-kind row counts and the greatest updatedAt across
	// all rows (nil when the store is empty).
	Status(ctx context.Context) (map[models.EntityKind]int, *time.Time, error)

	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error

	Close() error
}
