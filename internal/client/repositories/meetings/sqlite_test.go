package meetings

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuznecovs/minutekeeper/internal/models"
	"github.com/vkuznecovs/minutekeeper/internal/shared"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE meetings (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  date TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  stakeholder_ids TEXT NOT NULL DEFAULT '[]',
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL,
  deleted_at TIMESTAMP
);
`)
	require.NoError(t, err)

	return db
}

func newMeeting(id, title string, at time.Time) *models.Meeting {
	return &models.Meeting{
		ID:        id,
		Title:     title,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestSave_InsertAndOverwrite(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	m := newMeeting("m1", "Sprint Planning", now)
	m.StakeholderIDs = []string{"s1", "s2"}
	require.NoError(t, r.Save(ctx, m))

	got, err := r.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Sprint Planning", got.Title)
	assert.Equal(t, []string{"s1", "s2"}, got.StakeholderIDs)

	later := now.Add(time.Minute)
	m.Title = "Sprint Planning (moved)"
	m.StakeholderIDs = []string{"s1"}
	m.UpdatedAt = later
	require.NoError(t, r.Save(ctx, m))

	got, err = r.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Sprint Planning (moved)", got.Title)
	assert.Equal(t, []string{"s1"}, got.StakeholderIDs)
	assert.WithinDuration(t, later, got.UpdatedAt, time.Second)
}

func TestVisibility_ActiveVsTombstoned(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	active := newMeeting("m1", "Weekly 1:1", now)
	require.NoError(t, r.Save(ctx, active))

	deleted := newMeeting("m2", "Cancelled kickoff", now.Add(time.Second))
	deleted.DeletedAt = &now
	require.NoError(t, r.Save(ctx, deleted))

	_, err := r.GetByID(ctx, "m2")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	got, err := r.GetAny(ctx, "m2")
	require.NoError(t, err)
	require.NotNil(t, got.DeletedAt)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "m1", all[0].ID)

	trash, err := r.GetDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, "m2", trash[0].ID)

	everything, err := r.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, everything, 2)
}

func TestGetByID_Missing(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSearch_CaseInsensitiveActiveOnly(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)

	m1 := newMeeting("m1", "Quarterly Review", now)
	m1.Location = "Berlin office"
	require.NoError(t, r.Save(ctx, m1))

	m2 := newMeeting("m2", "Standup", now.Add(time.Second))
	m2.Notes = "review the berlin rollout"
	require.NoError(t, r.Save(ctx, m2))

	m3 := newMeeting("m3", "Berlin retro", now.Add(2*time.Second))
	m3.DeletedAt = &now
	require.NoError(t, r.Save(ctx, m3))

	got, err := r.Search(ctx, "BERLIN")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "m2", got[1].ID)
}

func TestDeleteByID_RemovesRow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, r.Save(ctx, newMeeting("m1", "Doomed", now)))
	require.NoError(t, r.DeleteByID(ctx, "m1"))

	_, err := r.GetAny(ctx, "m1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
