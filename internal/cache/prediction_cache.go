package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/inventory-predictor/backend-go/internal/config"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/domain"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/forecast"
	"github.com/redis/go-redis/v9"
)

const (
	predictionKeyPrefix     = "prediction"
	predictionScanBatchSize = 100
)

// PredictionCache memoises prediction responses under keys built by
// BuildPredictionKey.
type PredictionCache interface {
	Get(ctx context.Context, key string) (*domain.PredictionResponse, bool, error)
	Set(ctx context.Context, key string, resp *domain.PredictionResponse) error
	InvalidateAll(ctx context.Context) error
}

type redisPredictionCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopPredictionCache struct{}

func NewPredictionCache(cfg config.CacheConfig) (PredictionCache, error) {
	if !cfg.Enabled {
		return &noopPredictionCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisPredictionCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopPredictionCache() PredictionCache {
	return &noopPredictionCache{}
}

func (c *redisPredictionCache) Get(ctx context.Context, key string) (*domain.PredictionResponse, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var resp domain.PredictionResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, false, fmt.Errorf("decode prediction cache: %w", err)
	}

	return &resp, true, nil
}

func (c *redisPredictionCache) Set(ctx context.Context, key string, resp *domain.PredictionResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode prediction cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisPredictionCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, predictionKeyPrefix+":", predictionScanBatchSize)
}

func (n *noopPredictionCache) Get(ctx context.Context, key string) (*domain.PredictionResponse, bool, error) {
	return nil, false, nil
}

func (n *noopPredictionCache) Set(ctx context.Context, key string, resp *domain.PredictionResponse) error {
	return nil
}

func (n *noopPredictionCache) InvalidateAll(ctx context.Context) error {
	return nil
}

// BuildPredictionKey derives the cache key for a request classified with
// thresholds. History records are hashed in the order they were sent.
func BuildPredictionKey(req domain.PredictionRequest, thresholds forecast.Thresholds) string {
	return fmt.Sprintf("%s:%s", predictionKeyPrefix, predictionRequestHash(req, thresholds))
}

func predictionRequestHash(req domain.PredictionRequest, t forecast.Thresholds) string {
	var b strings.Builder
	fmt.Fprintf(&b, "thresholds=%g,%d,%g,%g,%g,%g,%d|",
		t.TrendSlope, t.HorizonDays, t.CriticalDays, t.LowStockDays,
		t.OverstockDays, t.NoSalesCoverDays, t.MaxSpanDays)
	b.WriteString("product=")
	b.WriteString(strings.TrimSpace(req.ProductID))
	b.WriteString("|current=")
	b.WriteString(strconv.Itoa(req.CurrentStock))
	b.WriteString("|safety=")
	b.WriteString(strconv.Itoa(req.SafetyStock))
	b.WriteString("|history=")
	for i, rec := range req.SalesHistory {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strings.TrimSpace(rec.Date))
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(rec.Quantity))
	}

	sum := sha1.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
