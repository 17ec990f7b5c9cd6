package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/bakeshop-backend/internal/config"
	"github.com/andresuchdata/bakeshop-backend/internal/domain"
)

const (
	usageReportKeyPrefix = "analytics:usage_report"
	invalidateScanBatch  = 100
	defaultReportTTL     = time.Minute
	connectTimeout       = 5 * time.Second
)

// ReportCache keeps recently generated usage reports so the dashboard's
// refresh polling does not recompute the full analysis every few seconds.
// A short TTL is enough; reports are cheap to rebuild and inventory only
// mutates when orders land.
type ReportCache interface {
	Get(ctx context.Context, timeframeDays int) (*domain.AnalysisReport, bool, error)
	Set(ctx context.Context, timeframeDays int, report *domain.AnalysisReport) error
	Invalidate(ctx context.Context, timeframeDays int) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.ReportTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultReportTTL
	}

	return &redisReportCache{client: client, ttl: ttl}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

// redisOptions prefers a full connection URL; host/port fields are the
// fallback for local setups without one.
func redisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}

	host, port := cfg.RedisHost, cfg.RedisPort
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func (c *redisReportCache) Get(ctx context.Context, timeframeDays int) (*domain.AnalysisReport, bool, error) {
	key := buildUsageReportKey(timeframeDays)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.AnalysisReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode usage report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, timeframeDays int, report *domain.AnalysisReport) error {
	key := buildUsageReportKey(timeframeDays)
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode usage report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) Invalidate(ctx context.Context, timeframeDays int) error {
	return c.client.Del(ctx, buildUsageReportKey(timeframeDays)).Err()
}

// InvalidateAll walks every cached report window with SCAN so a busy redis
// is never blocked by a KEYS call.
func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	pattern := usageReportKeyPrefix + ":*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, invalidateScanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (n *noopReportCache) Get(ctx context.Context, timeframeDays int) (*domain.AnalysisReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) Set(ctx context.Context, timeframeDays int, report *domain.AnalysisReport) error {
	return nil
}

func (n *noopReportCache) Invalidate(ctx context.Context, timeframeDays int) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildUsageReportKey(timeframeDays int) string {
	return fmt.Sprintf("%s:%d", usageReportKeyPrefix, timeframeDays)
}
