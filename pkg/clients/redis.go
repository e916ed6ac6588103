// Package clients создает клиентов внешних сервисов по конфигурации приложения.
package clients

import (
	"context"
	"time"

	"github.com/DRSN-tech/grocery-merchant/internal/cfg"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// RedisClient — клиент кэша выдачи поиска.
type RedisClient struct {
	Client *r.Client
	addr   string
}

func NewRedisClient(cfg *cfg.RedisCfg) *RedisClient {
	client := r.NewClient(&r.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		// Ожидание соединения из пула ограничено таймаутом запроса
		PoolTimeout:  cfg.Timeout,
	})

	return &RedisClient{
		Client: client,
		addr:   cfg.Addr,
	}
}

// Addr возвращает адрес сервера из конфигурации.
func (c *RedisClient) Addr() string {
	return c.addr
}

// Ping проверяет доступность сервера не дольше timeout.
func (c *RedisClient) Ping(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := c.Client.Ping(ctx).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *RedisClient) Close() error {
	return c.Client.Close()
}
