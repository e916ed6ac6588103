package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/DRSN-tech/grocery-merchant/internal/cfg"
	"github.com/DRSN-tech/grocery-merchant/internal/repository/redis/converter"
	"github.com/DRSN-tech/grocery-merchant/pkg/clients"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/cespare/xxhash/v2"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

type CacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// GetSearch возвращает закэшированные идентификаторы выдачи.
// При отсутствии ключа возвращает e.ErrCacheMiss.
func (c *CacheRepo) GetSearch(ctx context.Context, key string) ([]string, error) {
	redisKey := c.searchKey(key)

	data, err := c.client.Client.Get(ctx, redisKey).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.ErrCacheMiss
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.SearchRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		c.drop(ctx, redisKey)
		return nil, e.ErrCacheMiss
	}

	// Коллизия хэша: ключ занят другим запросом
	if model.Key != key {
		c.logger.Warnf("Cache key mismatch: want %q, got %q", key, model.Key)
		return nil, e.ErrCacheMiss
	}

	return converter.ToProductIDs(&model), nil
}

// SetSearch сохраняет выдачу поиска с TTL из конфигурации.
func (c *CacheRepo) SetSearch(ctx context.Context, key string, productIDs []string) error {
	data, err := json.Marshal(converter.ToRedisModel(key, productIDs))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, c.searchKey(key), data, c.cfg.SearchTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// InvalidateSearch удаляет все закэшированные выдачи с префиксом приложения.
func (c *CacheRepo) InvalidateSearch(ctx context.Context) error {
	iter := c.client.Client.Scan(ctx, 0, c.cfg.KeyPrefix+"search:*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Client.Del(ctx, keys...).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CacheRepo) drop(ctx context.Context, redisKey string) {
	if err := c.client.Client.Del(ctx, redisKey).Err(); err != nil {
		c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

// searchKey возвращает Redis-ключ выдачи: префикс и xxhash от ключа запроса
func (c *CacheRepo) searchKey(key string) string {
	return c.cfg.KeyPrefix + "search:" + strconv.FormatUint(xxhash.Sum64String(key), 16)
}
