package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func withTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(func() { client = nil })
}

func TestGetSetJSONRoundtrip(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(1), profile{ID: 1, Username: "warbler"}, time.Minute))

	var got profile
	found, err := GetJSON(ctx, UserKey(1), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "warbler", got.Username)

	found, err = GetJSON(ctx, UserKey(2), &got)
	require.NoError(t, err)
	assert.False(t, found, "missing key should not be found")
}

func TestAsideFetchesOnceThenServesFromCache(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *profile) func() error {
		return func() error {
			calls++
			*dest = profile{ID: 7, Username: "cached"}
			return nil
		}
	}

	var first profile
	require.NoError(t, Aside(ctx, UserKey(7), &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "cached", first.Username)

	var second profile
	require.NoError(t, Aside(ctx, UserKey(7), &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls, "second read should hit the cache")
	assert.Equal(t, "cached", second.Username)
}

func TestInvalidateUserForcesRefetch(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(3), profile{ID: 3, Username: "stale"}, time.Minute))
	InvalidateUser(ctx, 3)

	var got profile
	found, err := GetJSON(ctx, UserKey(3), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHelpersNoopWithoutRedis(t *testing.T) {
	client = nil
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(1), profile{ID: 1}, time.Minute))

	var got profile
	found, err := GetJSON(ctx, UserKey(1), &got)
	require.NoError(t, err)
	assert.False(t, found)

	calls := 0
	require.NoError(t, Aside(ctx, UserKey(1), &got, time.Minute, func() error {
		calls++
		got = profile{ID: 1, Username: "fresh"}
		return nil
	}))
	assert.Equal(t, 1, calls, "Aside should always fall through to fetch without Redis")
}
