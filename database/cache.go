package database

import (
	"context"
	"exhibition_manager/config"
	"log"

	"github.com/redis/go-redis/v9"
)

// Redis stays nil when REDIS_ADDR is not configured; callers must check.
var Redis *redis.Client

func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, availability cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Config("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unreachable (%v), availability cache disabled", err)
		return
	}

	Redis = client
	log.Println("Connection Opened to Redis")
}
