package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/client/client"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/metadata"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/repomanager"
	"github.com/vkuznecovs/minutekeeper/internal/models"
	"github.com/vkuznecovs/minutekeeper/internal/wire"
)

// pushBatchSize is the number of outbox entries sent per relay request.
const pushBatchSize = 50

// PushStats counts pushed entries in whole batches: a batch either succeeds
// and all its entries count as synced, or fails and all count as failed.
type PushStats struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

// SyncStatus is read-only introspection for display. Relay is nil when the
// relay could not be reached; that is not an error.
type SyncStatus struct {
	PendingCount int                  `json:"pendingCount"`
	LastSyncAt   *time.Time           `json:"lastSyncAt"`
	Relay        *wire.StatusResponse `json:"relay,omitempty"`
}

// SyncService drains the outbox to the relay and pulls snapshots back. No
// call retries on its own; a failed batch stays pending until the user
// triggers another push.
type SyncService interface {
	// PushChanges sends every pending outbox entry in createdAt order,
	// batch by batch. A failed batch is annotated and left pending, and
	// later batches are still attempted.
	PushChanges(ctx context.Context) (*PushStats, error)

	// PushAllData ignores the outbox and re-sends every replicated row as an
	// update. Idempotent against the relay's last-write-wins rule; used for
	// first-time sync or after a detected mismatch. The last-sync stamp is
	// cleared up front and restored only on full success.
	PushAllData(ctx context.Context) (*PushStats, error)

	// PullData fetches a snapshot from the relay, optionally limited to rows
	// updated after since, and merges it through the import algorithm.
	PullData(ctx context.Context, since *time.Time) (*ImportResult, error)

	PendingCount(ctx context.Context) (int, error)
	Status(ctx context.Context) (*SyncStatus, error)
}

type syncService struct {
	db     *sql.DB
	repos  repomanager.Manager
	relay  client.Relay
	backup BackupService
}

func NewSyncService(db *sql.DB, repos repomanager.Manager, relay client.Relay, backup BackupService) SyncService {
	return &syncService{db: db, repos: repos, relay: relay, backup: backup}
}

func (s *syncService) PushChanges(ctx context.Context) (*PushStats, error) {
	queue := s.repos.Queue(s.db)
	pending, err := queue.GetPending(ctx)
	if err != nil {
		return nil, err
	}

	stats := &PushStats{}
	for start := 0; start < len(pending); start += pushBatchSize {
		end := min(start+pushBatchSize, len(pending))
		batch := pending[start:end]

		changes := make([]wire.Change, 0, len(batch))
		ids := make([]string, 0, len(batch))
		for _, item := range batch {
			changes = append(changes, changeFromItem(item))
			ids = append(ids, item.ID)
		}

		if _, err := s.relay.Push(ctx, changes); err != nil {
			if markErr := queue.MarkFailed(ctx, ids, err.Error()); markErr != nil {
				return nil, markErr
			}
			stats.Failed += len(batch)
			continue
		}

		if err := queue.MarkSynced(ctx, ids, time.Now().UTC()); err != nil {
			return nil, err
		}
		stats.Synced += len(batch)
	}

	if stats.Failed == 0 {
		if err := s.recordSyncTime(ctx); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func (s *syncService) PushAllData(ctx context.Context) (*PushStats, error) {
	changes, err := s.allRowsAsChanges(ctx)
	if err != nil {
		return nil, err
	}

	// A full resync invalidates the previous stamp; it is written back only
	// when every batch goes through.
	if err := s.repos.Metadata(s.db).Delete(ctx, metadata.KeyLastSyncAt); err != nil {
		return nil, err
	}

	stats := &PushStats{}
	for start := 0; start < len(changes); start += pushBatchSize {
		end := min(start+pushBatchSize, len(changes))
		batch := changes[start:end]

		if _, err := s.relay.Push(ctx, batch); err != nil {
			stats.Failed += len(batch)
			continue
		}
		stats.Synced += len(batch)
	}

	if stats.Failed == 0 {
		if err := s.recordSyncTime(ctx); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func (s *syncService) PullData(ctx context.Context, since *time.Time) (*ImportResult, error) {
	snap, err := s.relay.Pull(ctx, since)
	if err != nil {
		return nil, err
	}
	return s.backup.Import(ctx, snap)
}

func (s *syncService) PendingCount(ctx context.Context) (int, error) {
	return s.repos.Queue(s.db).PendingCount(ctx)
}

func (s *syncService) Status(ctx context.Context) (*SyncStatus, error) {
	count, err := s.repos.Queue(s.db).PendingCount(ctx)
	if err != nil {
		return nil, err
	}

	status := &SyncStatus{PendingCount: count}

	raw, err := s.repos.Metadata(s.db).Get(ctx, metadata.KeyLastSyncAt)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		t, err := time.Parse(time.RFC3339Nano, string(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse last sync timestamp: %w", err)
		}
		status.LastSyncAt = &t
	}

	// Best effort: an unreachable relay still yields a local status.
	if relayStatus, err := s.relay.Status(ctx); err == nil {
		status.Relay = relayStatus
	}
	return status, nil
}

func (s *syncService) recordSyncTime(ctx context.Context) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return s.repos.Metadata(s.db).Set(ctx, metadata.KeyLastSyncAt, []byte(now))
}

// allRowsAsChanges enumerates every replicated row, tombstones included, as
// an update change stamped with the row's own updatedAt.
func (s *syncService) allRowsAsChanges(ctx context.Context) ([]wire.Change, error) {
	var changes []wire.Change

	meetings, err := s.repos.Meetings(s.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range meetings {
		c, err := changeFromRecord(models.KindMeeting, meetings[i].ID, meetings[i].UpdatedAt, &meetings[i])
		if err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}

	stakeholders, err := s.repos.Stakeholders(s.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range stakeholders {
		c, err := changeFromRecord(models.KindStakeholder, stakeholders[i].ID, stakeholders[i].UpdatedAt, &stakeholders[i])
		if err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}

	categories, err := s.repos.Categories(s.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		c, err := changeFromRecord(models.KindCategory, categories[i].ID, categories[i].UpdatedAt, &categories[i])
		if err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}

	transcripts, err := s.repos.Transcripts(s.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range transcripts {
		c, err := changeFromRecord(models.KindTranscript, transcripts[i].ID, transcripts[i].UpdatedAt, &transcripts[i])
		if err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}

	analyses, err := s.repos.Analyses(s.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range analyses {
		c, err := changeFromRecord(models.KindAnalysis, analyses[i].ID, analyses[i].UpdatedAt, &analyses[i])
		if err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}

	return changes, nil
}

func changeFromRecord(kind models.EntityKind, id string, updatedAt time.Time, record any) (wire.Change, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return wire.Change{}, fmt.Errorf("failed to encode %s payload: %w", kind, err)
	}
	return wire.Change{
		Entity:    kind,
		EntityID:  id,
		Operation: models.OpUpdate,
		Payload:   payload,
		Timestamp: updatedAt,
	}, nil
}

// changeFromItem converts an outbox entry to its wire form. The change
// timestamp is the payload's own updatedAt, which is the value last-write-wins
// compares; the enqueue time is close but not the same instant.
func changeFromItem(item models.SyncItem) wire.Change {
	ts := item.CreatedAt
	var payload struct {
		UpdatedAt time.Time `json:"updatedAt"`
	}
	if err := json.Unmarshal(item.Payload, &payload); err == nil && !payload.UpdatedAt.IsZero() {
		ts = payload.UpdatedAt
	}
	return wire.Change{
		Entity:    item.Entity,
		EntityID:  item.EntityID,
		Operation: item.Operation,
		Payload:   item.Payload,
		Timestamp: ts,
	}
}
