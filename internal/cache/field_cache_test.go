package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*FieldCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewWithClient(client, time.Minute), mr
}

func TestFieldCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	got, err := c.GetField(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, got)

	field := &model.Field{ID: 5, Name: "Pista 1", SlotDuration: 90}
	require.NoError(t, c.SaveField(ctx, field))

	got, err = c.GetField(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, field, got)
	assert.Equal(t, time.Minute, mr.TTL("cache:field:5"))

	mr.FastForward(2 * time.Minute)
	got, err = c.GetField(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFieldCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SaveField(ctx, &model.Field{ID: 1, SlotDuration: 60}))
	require.NoError(t, c.InvalidateField(ctx, 1))

	got, err := c.GetField(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}
