package database

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/teressaborra/Bookflix-sub000/config"
)

var Redis *redis.Client

// ConnectRedis opens the client used for the live seat feed pub/sub and
// the pricing snapshot cache.
func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Redis = redis.NewClient(&redis.Options{Addr: addr})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis not reachable at %s: %v", addr, err)
	}
}
