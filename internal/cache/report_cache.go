package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/autoorder/internal/config"
	"github.com/andresuchdata/autoorder/internal/domain"
)

const (
	reportKeyPrefix     = "replenishment:report"
	reportScanBatchSize = 100
)

// ReportCache stores evaluated reports per catalog source and filter.
type ReportCache interface {
	GetReport(ctx context.Context, source string, criteria domain.FilterCriteria) (*domain.ReplenishmentReport, bool, error)
	SetReport(ctx context.Context, source string, criteria domain.FilterCriteria, report *domain.ReplenishmentReport) error
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

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return NewRedisReportCache(client, ttl), nil
}

// NewRedisReportCache wraps an existing client. A non-positive ttl uses the default.
func NewRedisReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &redisReportCache{client: client, ttl: ttl}
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetReport(ctx context.Context, source string, criteria domain.FilterCriteria) (*domain.ReplenishmentReport, bool, error) {
	key := buildReportKey(source, criteria)

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.ReplenishmentReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) SetReport(ctx context.Context, source string, criteria domain.FilterCriteria, report *domain.ReplenishmentReport) error {
	key := buildReportKey(source, criteria)
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix, reportScanBatchSize)
}

func (n *noopReportCache) GetReport(ctx context.Context, source string, criteria domain.FilterCriteria) (*domain.ReplenishmentReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetReport(ctx context.Context, source string, criteria domain.FilterCriteria, report *domain.ReplenishmentReport) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildReportKey(source string, criteria domain.FilterCriteria) string {
	return fmt.Sprintf("%s:%s:%s", reportKeyPrefix, source, criteriaHash(criteria))
}

// criteriaHash keys on the normalized criteria encoded as JSON, so values
// containing separators cannot collide. Category and supplier match exactly
// so they keep their case; search is case-insensitive.
func criteriaHash(criteria domain.FilterCriteria) string {
	criteria = criteria.Normalize()
	if criteria.IsEmpty() {
		return "default"
	}
	criteria.SearchText = strings.ToLower(criteria.SearchText)

	raw, err := json.Marshal(criteria)
	if err != nil {
		raw = []byte(fmt.Sprintf("%q|%q|%q", criteria.Category, criteria.Supplier, criteria.SearchText))
	}
	sum := sha1.Sum(raw)
	return hex.EncodeToString(sum[:])
}
