package utils

import (
	"context"
	"log"
	"time"

	"tutorhub/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient holds booking snapshots between requests.
var CacheClient *redis.Client

// InitCache connects the snapshot cache using REDIS_CACHE_DB.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the snapshot cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}
