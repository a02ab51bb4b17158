// Package syncqueue persists the local outbox: append-only entries recording
// every replicated mutation until the relay acknowledges them.
package syncqueue

import (
	"context"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/models"
)

// Repository is the outbox store. Entries are inserted once per mutation;
// afterwards only syncedAt/error are ever written. Nothing deletes entries
// during normal operation.
type Repository interface {
	// Enqueue appends a new pending entry.
	Enqueue(ctx context.Context, item *models.SyncItem) error

	// GetPending returns entries with syncedAt IS NULL in createdAt order.
	GetPending(ctx context.Context) ([]models.SyncItem, error)

	// MarkSynced stamps syncedAt and clears the error on the given entries.
	MarkSynced(ctx context.Context, ids []string, when time.Time) error

	// MarkFailed records the last push failure on the given entries, leaving
	// them pending so the next push retries them.
	MarkFailed(ctx context.Context, ids []string, msg string) error

	// PendingCount returns the current queue depth.
	PendingCount(ctx context.Context) (int, error)
}
