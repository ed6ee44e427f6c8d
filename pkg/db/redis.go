package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection settings for the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisClient wraps a go-redis client.
type RedisClient struct {
	cfg RedisConfig
	rdb *redis.Client
}

func NewRedisClient(cfg RedisConfig) *RedisClient {
	return &RedisClient{cfg: cfg}
}

// Connect creates the client and pings the server.
func (c *RedisClient) Connect(ctx context.Context) error {
	if c.cfg.Addr == "" {
		return fmt.Errorf("redis address is required")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     c.cfg.Addr,
		Password: c.cfg.Password,
		DB:       c.cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("ping redis: %w", err)
	}
	c.rdb = rdb
	return nil
}

func (c *RedisClient) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// Client returns the underlying client, or nil before Connect.
func (c *RedisClient) Client() *redis.Client {
	return c.rdb
}
