package geocoding

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"pottyspotty/internal/models"
)

const cacheKeyPrefix = "geocode:"

// Cached remembers successful lookups in Redis. Misses are never stored, and
// any Redis failure falls through to the wrapped geocoder.
type Cached struct {
	next   Geocoder
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCached(next Geocoder, client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cached {
	return &Cached{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

func CacheKey(addr models.Address) string {
	return cacheKeyPrefix + strings.ToLower(FormatQuery(addr))
}

func (c *Cached) Geocode(ctx context.Context, addr models.Address) (*models.GeoPoint, error) {
	key := CacheKey(addr)

	raw, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var point models.GeoPoint
		if jsonErr := json.Unmarshal([]byte(raw), &point); jsonErr == nil && point.Valid() {
			return &point, nil
		}
		c.logger.Warn("discarding unreadable geocode cache entry", zap.String("key", key))
	case err != redis.Nil:
		c.logger.Warn("geocode cache read failed", zap.String("key", key), zap.Error(err))
	}

	point, err := c.next.Geocode(ctx, addr)
	if err != nil || point == nil {
		return point, err
	}

	body, err := json.Marshal(point)
	if err == nil {
		err = c.redis.Set(ctx, key, body, c.ttl).Err()
	}
	if err != nil {
		c.logger.Warn("geocode cache write failed", zap.String("key", key), zap.Error(err))
	}
	return point, nil
}
