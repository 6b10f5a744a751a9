package redis_helpers

import (
	"context"
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"scaling_probe/pkg/config"
	"scaling_probe/pkg/utils"
)

func Address(redisConf config.RedisConf) string {
	return net.JoinHostPort(redisConf.Host, strconv.Itoa(redisConf.Port))
}

// CreateRedisConnector builds a client for the queue database. The client is
// returned even if the first ping fails so the caller can decide whether to
// fall back to another access path.
func CreateRedisConnector(ctx context.Context, redisConf config.RedisConf) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         Address(redisConf),
		Password:     redisConf.Password,
		DB:           redisConf.Db,
		DialTimeout:  utils.RedisDialTimeout,
		ReadTimeout:  utils.QueueMutationTimeout,
		WriteTimeout: utils.QueueMutationTimeout,
		MaxRetries:   -1,
	})

	logrus.Debugf("Connecting to redis server %s (db %d)", Address(redisConf), redisConf.Db)

	pingCtx, cancel := context.WithTimeout(ctx, utils.RedisDialTimeout)
	defer cancel()

	return redisClient, redisClient.Ping(pingCtx).Err()
}
