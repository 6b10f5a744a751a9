package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"scaling_probe/internal/core"
)

// RedisBackend talks to the queue database over a direct connection.
type RedisBackend struct {
	RedisClient *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{RedisClient: client}
}

func (driver *RedisBackend) Name() string {
	return "redis://" + driver.RedisClient.Options().Addr
}

func (driver *RedisBackend) Ping(ctx context.Context) error {
	return wrapRedisError("ping", driver.RedisClient.Ping(ctx).Err())
}

func (driver *RedisBackend) LPush(ctx context.Context, key string, value []byte) (int64, error) {
	logrus.Tracef("LPUSH %s (%d bytes)", key, len(value))

	n, err := driver.RedisClient.LPush(ctx, key, value).Result()
	return n, wrapRedisError("lpush", err)
}

func (driver *RedisBackend) RPop(ctx context.Context, key string) ([]byte, bool, error) {
	logrus.Tracef("RPOP %s", key)

	value, err := driver.RedisClient.RPop(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, wrapRedisError("rpop", err)
	}

	return value, true, nil
}

func (driver *RedisBackend) LLen(ctx context.Context, key string) (int64, error) {
	n, err := driver.RedisClient.LLen(ctx, key).Result()
	return n, wrapRedisError("llen", err)
}

func (driver *RedisBackend) Del(ctx context.Context, key string) (int64, error) {
	logrus.Tracef("DEL %s", key)

	n, err := driver.RedisClient.Del(ctx, key).Result()
	return n, wrapRedisError("del", err)
}

func (driver *RedisBackend) Close() error {
	return driver.RedisClient.Close()
}

func wrapRedisError(command string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %s: %w", core.ErrConnectivity, command, err)
}
