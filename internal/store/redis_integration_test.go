//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutme/internal/shortlink"
	"cutme/internal/store"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func TestRedisCacheIntegration(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: getRedisAddr(),
	})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	t.Run("serves cached lookups", func(t *testing.T) {
		base := store.NewMemory()
		cached := store.NewRedisCache(base, client, time.Minute)

		link := &shortlink.ShortLink{URL: "https://cache.example/1", Code: "ctest00001"}
		require.NoError(t, cached.Create(ctx, link))

		// Warm the cache
		_, err := cached.FindByCode(ctx, "ctest00001")
		require.NoError(t, err)

		// Remove from the base store; the cache should still answer
		require.NoError(t, base.Delete(ctx, link.ID))

		hit, err := cached.FindByCode(ctx, "ctest00001")
		require.NoError(t, err)
		assert.Equal(t, "https://cache.example/1", hit.URL)
	})

	t.Run("invalidates on update", func(t *testing.T) {
		base := store.NewMemory()
		cached := store.NewRedisCache(base, client, time.Minute)

		link := &shortlink.ShortLink{URL: "https://cache.example/2", Code: "ctest00002"}
		require.NoError(t, cached.Create(ctx, link))

		_, err := cached.FindByCode(ctx, "ctest00002")
		require.NoError(t, err)

		link.URL = "https://cache.example/2-updated"
		require.NoError(t, cached.Update(ctx, link))

		hit, err := cached.FindByCode(ctx, "ctest00002")
		require.NoError(t, err)
		assert.Equal(t, "https://cache.example/2-updated", hit.URL)
	})

	t.Run("invalidates on delete", func(t *testing.T) {
		base := store.NewMemory()
		cached := store.NewRedisCache(base, client, time.Minute)

		link := &shortlink.ShortLink{URL: "https://cache.example/3", Code: "ctest00003"}
		require.NoError(t, cached.Create(ctx, link))

		_, err := cached.FindByCode(ctx, "ctest00003")
		require.NoError(t, err)

		require.NoError(t, cached.Delete(ctx, link.ID))

		_, err = cached.FindByCode(ctx, "ctest00003")
		assert.ErrorIs(t, err, shortlink.ErrNotFound)
	})
}
