package redis_utils_test

import (
	"context"
	"testing"
	"time"

	redis_utils "estate/src/utils/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) (*redis_utils.RedisHandler, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return redis_utils.NewRedisHandlerFromClient(client), mr
}

func TestRedisHandlerSetGet(t *testing.T) {
	h, _ := setupHandler(t)
	ctx := context.Background()

	rows := [][]string{{"1", "Piso Centro"}, {"2", "Atico"}}
	require.NoError(t, h.Set(ctx, "rows", rows, time.Minute))

	var got [][]string
	require.NoError(t, h.Get(ctx, "rows", &got))
	assert.Equal(t, rows, got)

	exists, err := h.Exists(ctx, "rows")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisHandlerMissAndExpiry(t *testing.T) {
	h, mr := setupHandler(t)
	ctx := context.Background()

	var got []string
	err := h.Get(ctx, "absent", &got)
	assert.ErrorIs(t, err, redis_utils.ErrCacheMiss)

	require.NoError(t, h.Set(ctx, "short", []string{"a"}, time.Second))
	mr.FastForward(2 * time.Second)
	assert.ErrorIs(t, h.Get(ctx, "short", &got), redis_utils.ErrCacheMiss)
}

func TestRedisHandlerSetsAndDelete(t *testing.T) {
	h, _ := setupHandler(t)
	ctx := context.Background()

	require.NoError(t, h.AddToSet(ctx, "keys:Assets", "k1", "k2"))
	require.NoError(t, h.Set(ctx, "k1", 1, 0))
	require.NoError(t, h.Set(ctx, "k2", 2, 0))

	members, err := h.SetMembers(ctx, "keys:Assets")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"k1", "k2"}, members)

	require.NoError(t, h.Delete(ctx, members...))
	exists, err := h.Exists(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateUUIDDeterministic(t *testing.T) {
	a := redis_utils.GenerateUUID("range", "Assets!A2:L50")
	b := redis_utils.GenerateUUID("range", "Assets!A2:L50")
	c := redis_utils.GenerateUUID("range", "Leases!A2:M50")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
