package repository

import (
	"context"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_CreateAndIsFollowing(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	u1 := newTestUser(t, users, "u1", "u1@test.com")
	u2 := newTestUser(t, users, "u2", "u2@test.com")

	require.NoError(t, follows.Create(ctx, u1.ID, u2.ID))

	following, err := follows.IsFollowing(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// The edge is directed: u2 does not follow u1 back.
	reverse, err := follows.IsFollowing(ctx, u2.ID, u1.ID)
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestFollowRepository_Create_Idempotent(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	u1 := newTestUser(t, users, "u1", "u1@test.com")
	u2 := newTestUser(t, users, "u2", "u2@test.com")

	require.NoError(t, follows.Create(ctx, u1.ID, u2.ID))
	require.NoError(t, follows.Create(ctx, u1.ID, u2.ID))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", u1.ID, u2.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFollowRepository_Create_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	u1 := newTestUser(t, users, "u1", "u1@test.com")

	err := follows.Create(ctx, u1.ID, 99999)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
}

func TestFollowRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	u1 := newTestUser(t, users, "u1", "u1@test.com")
	u2 := newTestUser(t, users, "u2", "u2@test.com")

	require.NoError(t, follows.Create(ctx, u1.ID, u2.ID))
	require.NoError(t, follows.Delete(ctx, u1.ID, u2.ID))

	following, err := follows.IsFollowing(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	assert.False(t, following)

	err = follows.Delete(ctx, u1.ID, u2.ID)
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
}

func TestFollowRepository_FollowingAndFollowers(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	u1 := newTestUser(t, users, "u1", "u1@test.com")
	u2 := newTestUser(t, users, "u2", "u2@test.com")
	u3 := newTestUser(t, users, "u3", "u3@test.com")

	// u1 follows u2 and u3; u3 follows u1.
	require.NoError(t, follows.Create(ctx, u1.ID, u2.ID))
	require.NoError(t, follows.Create(ctx, u1.ID, u3.ID))
	require.NoError(t, follows.Create(ctx, u3.ID, u1.ID))

	followingU1, err := follows.Following(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, followingU1, 2)
	assert.Equal(t, "u2", followingU1[0].Username)
	assert.Equal(t, "u3", followingU1[1].Username)

	followersU1, err := follows.Followers(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, followersU1, 1)
	assert.Equal(t, "u3", followersU1[0].Username)

	followingCount, followerCount, err := follows.Counts(ctx, u1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, followingCount)
	assert.EqualValues(t, 1, followerCount)
}
