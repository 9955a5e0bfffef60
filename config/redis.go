package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// ConnectRedis sets up the cache client. Redis is optional: when it is
// unreachable the app keeps running and every lookup goes to the database.
func ConnectRedis() {
	if App.RedisAddr == "" {
		slog.Warn("REDIS_ADDR is not set, caching disabled")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: App.RedisAddr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("failed to connect to redis, caching disabled", "error", err)
		RDB = nil
		return
	}

	slog.Info("connected to redis")
}
