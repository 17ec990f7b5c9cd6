package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/bakeshop-backend/internal/config"
	"github.com/andresuchdata/bakeshop-backend/internal/domain"
)

func TestRedisOptions(t *testing.T) {
	t.Run("url takes precedence", func(t *testing.T) {
		opts, err := redisOptions(config.CacheConfig{
			RedisURL:  "redis://:secret@cache.internal:6380/2",
			RedisHost: "ignored",
		})
		require.NoError(t, err)
		assert.Equal(t, "cache.internal:6380", opts.Addr)
		assert.Equal(t, "secret", opts.Password)
		assert.Equal(t, 2, opts.DB)
	})

	t.Run("host and port fallback", func(t *testing.T) {
		opts, err := redisOptions(config.CacheConfig{RedisHost: "10.0.0.5", RedisPort: "6400"})
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.5:6400", opts.Addr)
	})

	t.Run("empty config defaults to localhost", func(t *testing.T) {
		opts, err := redisOptions(config.CacheConfig{})
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:6379", opts.Addr)
	})

	t.Run("bad url rejected", func(t *testing.T) {
		_, err := redisOptions(config.CacheConfig{RedisURL: "://not-a-url"})
		assert.Error(t, err)
	})
}

func TestBuildUsageReportKey(t *testing.T) {
	assert.Equal(t, "analytics:usage_report:30", buildUsageReportKey(30))
	assert.Equal(t, "analytics:usage_report:90", buildUsageReportKey(90))
}

func TestNewReportCacheDisabled(t *testing.T) {
	impl, err := NewReportCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)
	assert.IsType(t, &noopReportCache{}, impl)
}

func TestNoopReportCache(t *testing.T) {
	ctx := context.Background()
	c := NewNoopReportCache()

	require.NoError(t, c.Set(ctx, 30, &domain.AnalysisReport{TimeframeDays: 30}))

	report, ok, err := c.Get(ctx, 30)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, report)

	assert.NoError(t, c.Invalidate(ctx, 30))
	assert.NoError(t, c.InvalidateAll(ctx))
}
