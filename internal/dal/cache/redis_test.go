package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webshop-labs/checkout/internal/service/models/cart"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	c := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return c, mr, cleanup
}

func TestGet_Success(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()

	crt := &cart.Cart{
		UserID: 123,
		Items: []cart.Item{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
		},
	}

	cartJSON, _ := json.Marshal(crt)
	mr.Set(cacheKey(123), string(cartJSON))

	result, err := c.Get(ctx, 123)

	require.NoError(t, err)
	assert.Equal(t, int64(123), result.UserID)
	assert.Len(t, result.Items, 2)
}

func TestGet_Miss(t *testing.T) {
	c, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := c.Get(context.Background(), 999)

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestGet_CorruptEntry(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(cacheKey(123), "not json")

	_, err := c.Get(context.Background(), 123)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestSet_ThenGet(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	crt := &cart.Cart{
		UserID: 42,
		Items:  []cart.Item{{ProductID: 7, Quantity: 1}},
	}

	require.NoError(t, c.Set(ctx, 42, crt))

	result, err := c.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, crt.Items, result.Items)

	// The entry carries a TTL so a stale cart cannot live forever.
	assert.Greater(t, mr.TTL(cacheKey(42)).Minutes(), 0.0)
}

func TestDelete(t *testing.T) {
	c, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, 42, &cart.Cart{UserID: 42}))

	require.NoError(t, c.Delete(ctx, 42))

	_, err := c.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
