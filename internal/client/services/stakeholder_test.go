package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuznecovs/minutekeeper/internal/shared"
)

func TestStakeholderPermanentDelete_StripsMeetingReferences(t *testing.T) {
	db, repos := setupServices(t)
	stakeholders := NewStakeholderService(db, repos)
	meetings := NewMeetingService(db, repos)
	ctx := context.Background()

	sID, err := stakeholders.Create(ctx, StakeholderInput{Name: "Dana", Company: "Acme"})
	require.NoError(t, err)
	otherID, err := stakeholders.Create(ctx, StakeholderInput{Name: "Lee"})
	require.NoError(t, err)

	mID, err := meetings.Create(ctx, MeetingInput{
		Title:          "Vendor sync",
		StakeholderIDs: []string{sID, otherID},
	})
	require.NoError(t, err)

	before, err := meetings.GetByID(ctx, mID)
	require.NoError(t, err)

	queueBefore := len(pendingItems(t, db, repos))

	require.NoError(t, stakeholders.PermanentDelete(ctx, sID))

	_, err = stakeholders.GetByID(ctx, sID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	after, err := meetings.GetByID(ctx, mID)
	require.NoError(t, err)
	assert.Equal(t, []string{otherID}, after.StakeholderIDs)
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))

	// reference cleanup is local bookkeeping, not a replicated mutation
	assert.Len(t, pendingItems(t, db, repos), queueBefore)
}

func TestCategoryCreate_RejectsUnknownColor(t *testing.T) {
	db, repos := setupServices(t)
	categories := NewCategoryService(db, repos)
	ctx := context.Background()

	_, err := categories.Create(ctx, CategoryInput{Name: "Clients", Color: "#123456"})
	require.ErrorIs(t, err, shared.ErrValidation)

	all, err := categories.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, pendingItems(t, db, repos))
}

func TestCategoryPermanentDelete_StripsStakeholderReferences(t *testing.T) {
	db, repos := setupServices(t)
	categories := NewCategoryService(db, repos)
	stakeholders := NewStakeholderService(db, repos)
	ctx := context.Background()

	cID, err := categories.Create(ctx, CategoryInput{Name: "Clients", Color: "#3b82f6"})
	require.NoError(t, err)

	sID, err := stakeholders.Create(ctx, StakeholderInput{Name: "Dana", CategoryIDs: []string{cID}})
	require.NoError(t, err)

	require.NoError(t, categories.PermanentDelete(ctx, cID))

	s, err := stakeholders.GetByID(ctx, sID)
	require.NoError(t, err)
	assert.Empty(t, s.CategoryIDs)
}
