// Package services implements the domain contract over the local store: the
// uniform create/update/soft-delete/restore/permanent-delete lifecycle per
// entity kind, the outbox discipline behind it, the push/pull sync engine,
// and the snapshot export/import merge shared by every backup transport.
//
// Services own validation, timestamps, and referential-integrity cascades.
// Every mutation and its outbox entry commit in one transaction via
// dbx.WithTx; repositories stay row-level.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/syncqueue"
	"github.com/vkuznecovs/minutekeeper/internal/models"
)

// enqueue appends one outbox entry whose payload is the full snapshot of the
// entity at enqueue time (not a diff).
func enqueue(ctx context.Context, q syncqueue.Repository, kind models.EntityKind, entityID string, op models.Operation, record any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode sync payload: %w", err)
	}
	item := &models.SyncItem{
		ID:        uuid.NewString(),
		Entity:    kind,
		EntityID:  entityID,
		Operation: op,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	return q.Enqueue(ctx, item)
}

// removeID returns ids without id, and whether anything was removed.
func removeID(ids []string, id string) ([]string, bool) {
	out := ids[:0:0]
	removed := false
	for _, v := range ids {
		if v == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out, removed
}
