package repository

import (
	"clubcal/cmd/internal/domain/entity"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_FindByFeedID(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	user := &entity.User{
		SubUUID:  "sub-1",
		Username: "alex",
		FeedPreferences: entity.FeedPreferences{
			IncludeAppointmentTypes: []entity.AppointmentType{entity.AppointmentTypeTournament, entity.AppointmentTypeHoliday},
			IncludeResponseTypes:    []entity.ResponseType{entity.ResponseTypeAccept},
			IncludeDraftStatus:      true,
		},
	}
	require.NoError(t, repo.Save(ctx, user))

	_, err := uuid.Parse(user.FeedID)
	require.NoError(t, err, "feed id is assigned on create")

	require.NoError(t, repo.SaveResponse(ctx, &entity.Response{UserID: user.ID, AppointmentID: "a", Type: entity.ResponseTypeAccept}))
	require.NoError(t, repo.SaveResponse(ctx, &entity.Response{UserID: user.ID, AppointmentID: "b", Type: entity.ResponseTypeDecline}))

	found, err := repo.FindByFeedID(ctx, user.FeedID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, user.FeedPreferences, found.FeedPreferences)
	assert.Len(t, found.Responses, 2)

	missing, err := repo.FindByFeedID(ctx, "not-a-feed")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_FeedIDIsOpaque(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	user := &entity.User{SubUUID: "sub-2", Username: "sam", FeedID: "not/a-uuid at all"}
	require.NoError(t, repo.Save(ctx, user))

	found, err := repo.FindByFeedID(ctx, "not/a-uuid at all")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "sam", found.Username)
}

func TestUserRepository_FindBySubAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	require.NoError(t, repo.Save(ctx, &entity.User{SubUUID: "sub-3", Username: "kim"}))

	user, err := repo.FindBySub(ctx, "sub-3")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Empty(t, user.FeedPreferences.IncludeAppointmentTypes)
	assert.False(t, user.FeedPreferences.IncludeDraftStatus)

	user.FeedPreferences.IncludeAppointmentTypes = []entity.AppointmentType{entity.AppointmentTypeMatch}
	previousFeedID := user.FeedID
	user.FeedID = uuid.NewString()
	require.NoError(t, repo.Save(ctx, user))

	updated, err := repo.FindBySub(ctx, "sub-3")
	require.NoError(t, err)
	assert.Equal(t, []entity.AppointmentType{entity.AppointmentTypeMatch}, updated.FeedPreferences.IncludeAppointmentTypes)

	stale, err := repo.FindByFeedID(ctx, previousFeedID)
	require.NoError(t, err)
	assert.Nil(t, stale)

	none, err := repo.FindBySub(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, none)
}
