package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosipdecode/backend/internal/domain"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "mosipdecode:")
	t.Cleanup(func() { cache.Close() })
	return cache, mr
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()

	batch := &domain.OCRBatch{
		Fragments: []domain.OCRFragment{{Text: "姓名: 张伟", Confidence: 0.9}},
		Language:  "zh",
	}
	require.NoError(t, cache.Set(ctx, "ocr:zh:abc", batch, time.Minute))

	assert.True(t, mr.Exists("mosipdecode:ocr:zh:abc"), "key should carry the prefix")
	assert.Equal(t, time.Minute, mr.TTL("mosipdecode:ocr:zh:abc"))

	got, err := cache.Get(ctx, "ocr:zh:abc")
	require.NoError(t, err)

	m, ok := got.(map[string]interface{})
	require.True(t, ok, "values come back as decoded JSON")
	assert.Equal(t, "zh", m["language"])
}

func TestRedisCache_Miss(t *testing.T) {
	cache, _ := newTestRedisCache(t)

	_, err := cache.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Expiry(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Second))
	mr.FastForward(2 * time.Second)

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_CorruptValueIsMiss(t *testing.T) {
	cache, mr := newTestRedisCache(t)

	require.NoError(t, mr.Set("mosipdecode:bad", "{not json"))

	_, err := cache.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_DeleteAndExists(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", 1, time.Minute))

	exists, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, cache.Delete(ctx, "k"))
	require.NoError(t, cache.Delete(ctx, "k"), "deleting twice is fine")

	exists, err = cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_Unavailable(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()
	mr.Close()

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)

	err = cache.Set(ctx, "k", "v", time.Minute)
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)

	assert.Error(t, cache.Ping(ctx))
}

func TestNewRedisCache(t *testing.T) {
	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cache, err := NewRedisCache(context.Background(), "redis://"+mr.Addr()+"/0", "")
		require.NoError(t, err)
		defer cache.Close()
		assert.NoError(t, cache.Ping(context.Background()))
	})

	t.Run("requires url", func(t *testing.T) {
		_, err := NewRedisCache(context.Background(), "", "")
		assert.Error(t, err)
	})

	t.Run("rejects bad url", func(t *testing.T) {
		_, err := NewRedisCache(context.Background(), "http://nope", "")
		assert.Error(t, err)
	})
}
