package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuznecovs/minutekeeper/internal/models"
	"github.com/vkuznecovs/minutekeeper/internal/shared"
)

func TestMeetingCreate_PersistsAndEnqueues(t *testing.T) {
	db, repos := setupServices(t)
	svc := NewMeetingService(db, repos)
	ctx := context.Background()

	id, err := svc.Create(ctx, MeetingInput{Title: "Sprint Planning", Date: "2026-08-29", Location: "Room 4"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	m, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Sprint Planning", m.Title)
	assert.Nil(t, m.DeletedAt)
	assert.Equal(t, m.CreatedAt, m.UpdatedAt)

	items := pendingItems(t, db, repos)
	require.Len(t, items, 1)
	assert.Equal(t, models.KindMeeting, items[0].Entity)
	assert.Equal(t, id, items[0].EntityID)
	assert.Equal(t, models.OpCreate, items[0].Operation)

	// the payload is a full snapshot of the persisted record
	var payload models.Meeting
	require.NoError(t, json.Unmarshal(items[0].Payload, &payload))
	assert.Equal(t, "Sprint Planning", payload.Title)
	assert.Equal(t, id, payload.ID)
}

func TestMeetingCreate_ValidationLeavesNoTrace(t *testing.T) {
	db, repos := setupServices(t)
	svc := NewMeetingService(db, repos)
	ctx := context.Background()

	_, err := svc.Create(ctx, MeetingInput{Title: "   "})
	require.ErrorIs(t, err, shared.ErrValidation)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, pendingItems(t, db, repos))
}

func TestMeetingUpdate_MergesAndEnqueuesPostMergeRecord(t *testing.T) {
	db, repos := setupServices(t)
	svc := NewMeetingService(db, repos)
	ctx := context.Background()

	id, err := svc.Create(ctx, MeetingInput{Title: "Kickoff", Location: "HQ"})
	require.NoError(t, err)

	title := "Kickoff (rescheduled)"
	require.NoError(t, svc.Update(ctx, id, MeetingUpdate{Title: &title}))

	m, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, title, m.Title)
	assert.Equal(t, "HQ", m.Location) // untouched field survives
	assert.True(t, m.UpdatedAt.After(m.CreatedAt) || m.UpdatedAt.Equal(m.CreatedAt))

	items := pendingItems(t, db, repos)
	require.Len(t, items, 2)
	assert.Equal(t, models.OpUpdate, items[1].Operation)

	var payload models.Meeting
	require.NoError(t, json.Unmarshal(items[1].Payload, &payload))
	assert.Equal(t, title, payload.Title)
	assert.Equal(t, "HQ", payload.Location)
}

func TestMeetingSoftDeleteAndRestore(t *testing.T) {
	db, repos := setupServices(t)
	svc := NewMeetingService(db, repos)
	ctx := context.Background()

	id, err := svc.Create(ctx, MeetingInput{Title: "Retro"})
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(ctx, id))

	_, err = svc.GetByID(ctx, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	trash, err := svc.GetDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	require.NotNil(t, trash[0].DeletedAt)
	assert.Equal(t, *trash[0].DeletedAt, trash[0].UpdatedAt)

	// the delete entry carries the tombstoned record
	items := pendingItems(t, db, repos)
	require.Len(t, items, 2)
	assert.Equal(t, models.OpDelete, items[1].Operation)
	var payload models.Meeting
	require.NoError(t, json.Unmarshal(items[1].Payload, &payload))
	require.NotNil(t, payload.DeletedAt)

	require.NoError(t, svc.Restore(ctx, id))

	m, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, m.DeletedAt)

	// restoration travels as an ordinary update
	items = pendingItems(t, db, repos)
	require.Len(t, items, 3)
	assert.Equal(t, models.OpUpdate, items[2].Operation)
}

func TestMeetingPermanentDelete_CascadesWithoutEnqueue(t *testing.T) {
	db, repos := setupServices(t)
	meetings := NewMeetingService(db, repos)
	transcripts := NewTranscriptService(db, repos)
	analyses := NewAnalysisService(db, repos)
	recordings := NewRecordingService(db, repos)
	ctx := context.Background()

	id, err := meetings.Create(ctx, MeetingInput{Title: "Design review"})
	require.NoError(t, err)

	_, err = transcripts.Create(ctx, TranscriptInput{MeetingID: id, Content: "hello"})
	require.NoError(t, err)
	_, err = analyses.Create(ctx, AnalysisInput{MeetingID: id, Summary: "went well"})
	require.NoError(t, err)
	_, err = recordings.Create(ctx, RecordingInput{MeetingID: id, Path: "/tmp/rec.wav"})
	require.NoError(t, err)

	before := len(pendingItems(t, db, repos))

	require.NoError(t, meetings.PermanentDelete(ctx, id))

	_, err = meetings.GetByID(ctx, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	ts, err := transcripts.GetByMeetingID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, ts)

	as, err := analyses.GetByMeetingID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, as)

	rs, err := recordings.GetByMeetingID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, rs)

	// permanent delete is local-only: nothing new in the outbox
	assert.Len(t, pendingItems(t, db, repos), before)
}
