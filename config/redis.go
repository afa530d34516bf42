package config

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var (
	rdb    *redis.Client
	locker *redislock.Client
)

func GetRedisDB() *redis.Client {
	return rdb
}

func GetRedisLock() *redislock.Client {
	return locker
}

// ConnectRedis dials REDIS_ADDR. It is a no-op when no address is configured,
// leaving GetRedisDB and GetRedisLock nil.
func ConnectRedis(ctx context.Context) error {
	if RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     RedisAddr,
		Password: RedisPassword,
		DB:       RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return err
	}

	rdb = client
	locker = redislock.New(rdb)
	logg.WithField("addr", RedisAddr).Info("connected to redis")
	return nil
}

func CloseRedis() {
	if rdb != nil {
		_ = rdb.Close()
	}
}
