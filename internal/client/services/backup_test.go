package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuznecovs/minutekeeper/internal/models"
	"github.com/vkuznecovs/minutekeeper/internal/shared"
	"github.com/vkuznecovs/minutekeeper/internal/wire"
)

func seedStore(t *testing.T, ctx context.Context, svc MeetingService, categories CategoryService) (meetingID, trashedID string) {
	t.Helper()

	meetingID, err := svc.Create(ctx, MeetingInput{Title: "Roadmap review", Notes: "Q4 scope"})
	require.NoError(t, err)

	trashedID, err = svc.Create(ctx, MeetingInput{Title: "Old planning"})
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(ctx, trashedID))

	_, err = categories.Create(ctx, CategoryInput{Name: "Clients", Color: "#22c55e"})
	require.NoError(t, err)

	return meetingID, trashedID
}

func TestExport_IncludesTombstones(t *testing.T) {
	db, repos := setupServices(t)
	meetings := NewMeetingService(db, repos)
	categories := NewCategoryService(db, repos)
	backup := NewBackupService(db, repos)
	ctx := context.Background()

	_, trashedID := seedStore(t, ctx, meetings, categories)

	snap, err := backup.Export(ctx)
	require.NoError(t, err)

	assert.Equal(t, wire.SnapshotVersion, snap.Version)
	assert.Len(t, snap.Meetings, 2)
	assert.Len(t, snap.StakeholderCategories, 1)

	var foundTombstone bool
	for _, m := range snap.Meetings {
		if m.ID == trashedID {
			foundTombstone = true
			assert.NotNil(t, m.DeletedAt)
		}
	}
	assert.True(t, foundTombstone)
}

func TestImport_RoundTripIntoFreshStore(t *testing.T) {
	db, repos := setupServices(t)
	meetings := NewMeetingService(db, repos)
	categories := NewCategoryService(db, repos)
	backup := NewBackupService(db, repos)
	ctx := context.Background()

	meetingID, trashedID := seedStore(t, ctx, meetings, categories)

	snap, err := backup.Export(ctx)
	require.NoError(t, err)

	freshDB, freshRepos := setupServices(t)
	freshBackup := NewBackupService(freshDB, freshRepos)

	result, err := freshBackup.Import(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 0, result.Skipped)

	got, err := freshRepos.Meetings(freshDB).GetAny(ctx, meetingID)
	require.NoError(t, err)
	assert.Equal(t, "Roadmap review", got.Title)
	assert.Equal(t, "Q4 scope", got.Notes)

	// trash state survives a restore
	tomb, err := freshRepos.Meetings(freshDB).GetAny(ctx, trashedID)
	require.NoError(t, err)
	assert.NotNil(t, tomb.DeletedAt)
}

func TestImport_Idempotent(t *testing.T) {
	db, repos := setupServices(t)
	meetings := NewMeetingService(db, repos)
	categories := NewCategoryService(db, repos)
	backup := NewBackupService(db, repos)
	ctx := context.Background()

	seedStore(t, ctx, meetings, categories)

	snap, err := backup.Export(ctx)
	require.NoError(t, err)

	result, err := backup.Import(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 3, result.Skipped)
}

func TestImport_LastWriteWins(t *testing.T) {
	db, repos := setupServices(t)
	backup := NewBackupService(db, repos)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	local := &models.Meeting{
		ID:             "m1",
		Title:          "Local title",
		StakeholderIDs: []string{},
		CreatedAt:      base,
		UpdatedAt:      base,
	}
	require.NoError(t, repos.Meetings(db).Save(ctx, local))

	older := *local
	older.Title = "Stale title"
	older.UpdatedAt = base.Add(-time.Hour)

	result, err := backup.Import(ctx, &wire.Snapshot{
		Version:  wire.SnapshotVersion,
		Meetings: []models.Meeting{older},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	got, err := repos.Meetings(db).GetAny(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Local title", got.Title)

	newer := *local
	newer.Title = "Fresh title"
	newer.UpdatedAt = base.Add(time.Hour)

	result, err = backup.Import(ctx, &wire.Snapshot{
		Version:  wire.SnapshotVersion,
		Meetings: []models.Meeting{newer},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped)

	got, err = repos.Meetings(db).GetAny(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Fresh title", got.Title)
}

func TestValidateSnapshot(t *testing.T) {
	db, repos := setupServices(t)
	backup := NewBackupService(db, repos)

	valid := wire.Snapshot{
		Version:               wire.SnapshotVersion,
		ExportedAt:            time.Now().UTC(),
		Meetings:              []models.Meeting{{ID: "m1", Title: "Planning"}},
		Stakeholders:          []models.Stakeholder{},
		StakeholderCategories: []models.StakeholderCategory{},
		Transcripts:           []models.Transcript{},
		MeetingAnalyses:       []models.MeetingAnalysis{},
	}
	raw, err := json.Marshal(valid)
	require.NoError(t, err)
	require.NoError(t, backup.ValidateSnapshot(raw))

	tests := []struct {
		name string
		raw  string
	}{
		{"not an object", `[1,2,3]`},
		{"missing version", `{"meetings":[],"stakeholders":[],"stakeholderCategories":[],"transcripts":[],"meetingAnalyses":[]}`},
		{"unknown version", `{"version":"2.0","meetings":[],"stakeholders":[],"stakeholderCategories":[],"transcripts":[],"meetingAnalyses":[]}`},
		{"missing entity field", `{"version":"1.0","meetings":[],"stakeholders":[],"stakeholderCategories":[],"transcripts":[]}`},
		{"non-array entity field", `{"version":"1.0","meetings":{},"stakeholders":[],"stakeholderCategories":[],"transcripts":[],"meetingAnalyses":[]}`},
		{"meeting without id", `{"version":"1.0","meetings":[{"title":"x"}],"stakeholders":[],"stakeholderCategories":[],"transcripts":[],"meetingAnalyses":[]}`},
		{"meeting without title", `{"version":"1.0","meetings":[{"id":"m1"}],"stakeholders":[],"stakeholderCategories":[],"transcripts":[],"meetingAnalyses":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := backup.ValidateSnapshot([]byte(tt.raw))
			assert.ErrorIs(t, err, shared.ErrInvalidSnapshot)
		})
	}
}
