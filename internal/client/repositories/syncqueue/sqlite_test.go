package syncqueue

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuznecovs/minutekeeper/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE sync_queue (
  id TEXT PRIMARY KEY,
  entity TEXT NOT NULL,
  entity_id TEXT NOT NULL,
  operation TEXT NOT NULL,
  payload TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL,
  synced_at TIMESTAMP,
  error TEXT
);
`)
	require.NoError(t, err)

	return db
}

func enqueueN(t *testing.T, r *SQLiteRepository, n int, base time.Time) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		require.NoError(t, r.Enqueue(context.Background(), &models.SyncItem{
			ID:        id,
			Entity:    models.KindMeeting,
			EntityID:  "m-" + id,
			Operation: models.OpUpdate,
			Payload:   []byte(`{"id":"m-` + id + `"}`),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
		ids = append(ids, id)
	}
	return ids
}

func TestGetPending_OrderedByCreatedAt(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	base := time.Now().UTC().Truncate(time.Second)
	// enqueue out of order
	require.NoError(t, r.Enqueue(context.Background(), &models.SyncItem{
		ID: "later", Entity: models.KindMeeting, EntityID: "m2",
		Operation: models.OpCreate, Payload: []byte(`{}`), CreatedAt: base.Add(time.Minute),
	}))
	require.NoError(t, r.Enqueue(context.Background(), &models.SyncItem{
		ID: "earlier", Entity: models.KindMeeting, EntityID: "m1",
		Operation: models.OpCreate, Payload: []byte(`{}`), CreatedAt: base,
	}))

	pending, err := r.GetPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "earlier", pending[0].ID)
	assert.Equal(t, "later", pending[1].ID)
	assert.Nil(t, pending[0].SyncedAt)
	assert.Nil(t, pending[0].Error)
}

func TestMarkSynced_RemovesFromPendingAndClearsError(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	ids := enqueueN(t, r, 3, base)

	require.NoError(t, r.MarkFailed(ctx, ids[:2], "relay request failed"))
	require.NoError(t, r.MarkSynced(ctx, ids[:2], base.Add(time.Hour)))

	pending, err := r.GetPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ids[2], pending[0].ID)

	var errMsg sql.NullString
	require.NoError(t, db.QueryRow(`SELECT error FROM sync_queue WHERE id = ?`, ids[0]).Scan(&errMsg))
	assert.False(t, errMsg.Valid)

	count, err := r.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMarkFailed_LeavesItemsPending(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	ids := enqueueN(t, r, 2, base)

	require.NoError(t, r.MarkFailed(ctx, ids, "connection refused"))

	pending, err := r.GetPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, item := range pending {
		require.NotNil(t, item.Error)
		assert.Equal(t, "connection refused", *item.Error)
	}
}

func TestMarkSynced_EmptyIDsIsNoop(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	require.NoError(t, r.MarkSynced(context.Background(), nil, time.Now()))
	require.NoError(t, r.MarkFailed(context.Background(), nil, "x"))
}
