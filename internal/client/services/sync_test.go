package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuznecovs/minutekeeper/internal/client/client"
	"github.com/vkuznecovs/minutekeeper/internal/models"
	"github.com/vkuznecovs/minutekeeper/internal/wire"
)

// fakeRelay is an httptest-backed relay capturing pushed batches.
type fakeRelay struct {
	server  *httptest.Server
	batches [][]wire.Change
	fail    atomic.Bool
	pull    *wire.Snapshot
}

func newFakeRelay(t *testing.T) *fakeRelay {
	t.Helper()
	f := &fakeRelay{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":"boom"}`)
			return
		}
		switch r.URL.Path {
		case "/push":
			var req wire.PushRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			f.batches = append(f.batches, req.Changes)
			_ = json.NewEncoder(w).Encode(wire.PushResponse{Processed: len(req.Changes)})
		case "/pull":
			_ = json.NewEncoder(w).Encode(f.pull)
		case "/status":
			_ = json.NewEncoder(w).Encode(wire.StatusResponse{Counts: map[models.EntityKind]int{models.KindMeeting: 1}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeRelay) client() *client.RelayClient {
	return client.NewRelayClient(f.server.URL, "tok", 5*time.Second)
}

func newSyncService(t *testing.T, f *fakeRelay) (SyncService, MeetingService, func() []models.SyncItem) {
	t.Helper()
	db, repos := setupServices(t)
	backup := NewBackupService(db, repos)
	sync := NewSyncService(db, repos, f.client(), backup)
	meetings := NewMeetingService(db, repos)
	return sync, meetings, func() []models.SyncItem { return pendingItems(t, db, repos) }
}

func TestPushChanges_DrainsQueue(t *testing.T) {
	f := newFakeRelay(t)
	sync, meetings, pending := newSyncService(t, f)
	ctx := context.Background()

	id, err := meetings.Create(ctx, MeetingInput{Title: "Planning"})
	require.NoError(t, err)
	title := "Planning v2"
	require.NoError(t, meetings.Update(ctx, id, MeetingUpdate{Title: &title}))

	stats, err := sync.PushChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Synced)
	assert.Equal(t, 0, stats.Failed)
	assert.Empty(t, pending())

	require.Len(t, f.batches, 1)
	require.Len(t, f.batches[0], 2)

	// the change timestamp is the payload's updatedAt, not the enqueue time
	m, err := meetings.GetByID(ctx, id)
	require.NoError(t, err)
	last := f.batches[0][1]
	assert.Equal(t, models.OpUpdate, last.Operation)
	assert.WithinDuration(t, m.UpdatedAt, last.Timestamp, time.Second)

	status, err := sync.Status(ctx)
	require.NoError(t, err)
	assert.NotNil(t, status.LastSyncAt)
	assert.Equal(t, 0, status.PendingCount)
}

func TestPushChanges_FailureLeavesBatchPendingThenRetries(t *testing.T) {
	f := newFakeRelay(t)
	sync, meetings, pending := newSyncService(t, f)
	ctx := context.Background()

	_, err := meetings.Create(ctx, MeetingInput{Title: "Offsite"})
	require.NoError(t, err)

	f.fail.Store(true)
	stats, err := sync.PushChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Synced)
	assert.Equal(t, 1, stats.Failed)

	items := pending()
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Error)

	// the next user-triggered push retries the same batch
	f.fail.Store(false)
	stats, err = sync.PushChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Synced)
	assert.Empty(t, pending())
}

func TestPushChanges_Batching(t *testing.T) {
	f := newFakeRelay(t)
	db, repos := setupServices(t)
	backup := NewBackupService(db, repos)
	sync := NewSyncService(db, repos, f.client(), backup)
	ctx := context.Background()

	queue := repos.Queue(db)
	base := time.Now().UTC()
	for i := 0; i < 120; i++ {
		require.NoError(t, queue.Enqueue(ctx, &models.SyncItem{
			ID:        fmt.Sprintf("q%03d", i),
			Entity:    models.KindMeeting,
			EntityID:  fmt.Sprintf("m%03d", i),
			Operation: models.OpUpdate,
			Payload:   []byte(`{"id":"x"}`),
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		}))
	}

	stats, err := sync.PushChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, stats.Synced)

	require.Len(t, f.batches, 3)
	assert.Len(t, f.batches[0], 50)
	assert.Len(t, f.batches[1], 50)
	assert.Len(t, f.batches[2], 20)
}

func TestPushAllData_ResendsEveryRow(t *testing.T) {
	f := newFakeRelay(t)
	sync, meetings, _ := newSyncService(t, f)
	ctx := context.Background()

	_, err := meetings.Create(ctx, MeetingInput{Title: "One"})
	require.NoError(t, err)
	trashedID, err := meetings.Create(ctx, MeetingInput{Title: "Two"})
	require.NoError(t, err)
	require.NoError(t, meetings.SoftDelete(ctx, trashedID))

	stats, err := sync.PushAllData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Synced)
	assert.Equal(t, 0, stats.Failed)

	require.Len(t, f.batches, 1)
	for _, change := range f.batches[0] {
		assert.Equal(t, models.OpUpdate, change.Operation)
	}
}

func TestPushAllData_ClearsSyncStampUntilSuccess(t *testing.T) {
	f := newFakeRelay(t)
	sync, meetings, _ := newSyncService(t, f)
	ctx := context.Background()

	_, err := meetings.Create(ctx, MeetingInput{Title: "Retro"})
	require.NoError(t, err)

	stats, err := sync.PushChanges(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Synced)

	status, err := sync.Status(ctx)
	require.NoError(t, err)
	require.NotNil(t, status.LastSyncAt)

	// a failed resync must not leave the old stamp behind
	f.fail.Store(true)
	stats, err = sync.PushAllData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)

	status, err = sync.Status(ctx)
	require.NoError(t, err)
	assert.Nil(t, status.LastSyncAt)

	f.fail.Store(false)
	stats, err = sync.PushAllData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Synced)

	status, err = sync.Status(ctx)
	require.NoError(t, err)
	assert.NotNil(t, status.LastSyncAt)
}

func TestPullData_MergesSnapshot(t *testing.T) {
	f := newFakeRelay(t)
	sync, meetings, _ := newSyncService(t, f)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	f.pull = &wire.Snapshot{
		Version:    wire.SnapshotVersion,
		ExportedAt: now,
		Meetings: []models.Meeting{{
			ID:             "remote-1",
			Title:          "From another device",
			StakeholderIDs: []string{},
			CreatedAt:      now,
			UpdatedAt:      now,
		}},
	}

	result, err := sync.PullData(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	m, err := meetings.GetByID(ctx, "remote-1")
	require.NoError(t, err)
	assert.Equal(t, "From another device", m.Title)
}
