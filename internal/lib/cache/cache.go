// Package cache keeps hot read models in Redis: the category list and
// per-user unread message counts.
//
// Redis is an optimisation only. Read errors are reported as misses and
// callers fall back to PostgreSQL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/deppfellow/askhub/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	keyPrefix      = "askhub:"
	categoriesKey  = keyPrefix + "categories"
	CategoriesTTL  = time.Hour
	UnreadCountTTL = 5 * time.Minute

	// UnreadVersionTTL outlives any in-flight count computation.
	UnreadVersionTTL = 24 * time.Hour
)

func unreadKey(userID string) string {
	return keyPrefix + "unread:" + userID
}

func unreadVersionKey(userID string) string {
	return keyPrefix + "unread_version:" + userID
}

type Cache struct {
	rdb    redis.Cmdable
	logger *zerolog.Logger
}

func New(rdb redis.Cmdable, logger *zerolog.Logger) *Cache {
	return &Cache{rdb: rdb, logger: logger}
}

func (c *Cache) Categories(ctx context.Context) ([]model.Category, bool) {
	b, err := c.rdb.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		c.logMiss(err, categoriesKey)
		return nil, false
	}

	var categories []model.Category
	if err := json.Unmarshal(b, &categories); err != nil {
		c.logger.Warn().Err(err).Str("key", categoriesKey).Msg("discarding corrupt cache entry")
		return nil, false
	}
	return categories, true
}

func (c *Cache) SetCategories(ctx context.Context, categories []model.Category) {
	b, err := json.Marshal(categories)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to encode categories for cache")
		return
	}
	if err := c.rdb.Set(ctx, categoriesKey, b, CategoriesTTL).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", categoriesKey).Msg("failed to cache categories")
	}
}

// UnreadCount returns the cached count and, on a miss, the version a
// later SetUnreadCount must still observe. A negative version means the
// cache could not be read and the count should not be stored.
func (c *Cache) UnreadCount(ctx context.Context, userID string) (int, int64, bool) {
	key := unreadKey(userID)
	vals, err := c.rdb.MGet(ctx, key, unreadVersionKey(userID)).Result()
	if err != nil {
		c.logMiss(err, key)
		return 0, -1, false
	}

	version := int64(0)
	if s, ok := vals[1].(string); ok {
		if version, err = strconv.ParseInt(s, 10, 64); err != nil {
			return 0, -1, false
		}
	}

	s, ok := vals[0].(string)
	if !ok {
		return 0, version, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, version, false
	}
	return n, version, true
}

// setIfVersion stores the count only while the version key still holds
// the value read before the count was computed. A missing version key
// reads as 0.
var setIfVersion = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if current == false then current = '0' end
if current ~= ARGV[2] then return 0 end
redis.call('SET', KEYS[1], ARGV[1], 'EX', ARGV[3])
return 1
`)

// SetUnreadCount caches n unless an invalidation happened after version
// was read.
func (c *Cache) SetUnreadCount(ctx context.Context, userID string, n int, version int64) {
	if version < 0 {
		return
	}
	key := unreadKey(userID)
	keys := []string{key, unreadVersionKey(userID)}
	stored, err := setIfVersion.Run(ctx, c.rdb, keys, n, version, int(UnreadCountTTL.Seconds())).Int()
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to cache unread count")
		return
	}
	if stored == 0 {
		c.logger.Debug().Str("key", key).Msg("skipped caching stale unread count")
	}
}

// InvalidateUnread drops the cached count and bumps the version so a
// count computed before this write is never stored.
func (c *Cache) InvalidateUnread(ctx context.Context, userID string) {
	key := unreadKey(userID)
	versionKey := unreadVersionKey(userID)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, UnreadVersionTTL)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to invalidate unread count")
	}
}

func (c *Cache) logMiss(err error, key string) {
	if errors.Is(err, redis.Nil) {
		return
	}
	c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
}
