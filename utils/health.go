package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus represents current status of the profile store and snapshot cache.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every dependency answered the last probe.
func (h HealthStatus) Healthy() bool {
	return h.Mongo && h.Redis
}

// Probe pings one dependency.
type Probe func(ctx context.Context) error

func MongoProbe(client *mongo.Client) Probe {
	return func(ctx context.Context) error { return client.Ping(ctx, nil) }
}

func RedisProbe(client *redis.Client) Probe {
	return func(ctx context.Context) error { return client.Ping(ctx).Err() }
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth runs both probes once and stores the result.
func CheckHealth(ctx context.Context, mongoProbe, redisProbe Probe) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := HealthStatus{
		Mongo:     mongoProbe(ctx) == nil,
		Redis:     redisProbe(ctx) == nil,
		CheckedAt: time.Now(),
	}
	if !status.Healthy() {
		GetLogger().Warn("Dependency health check failed",
			zap.Bool("mongo", status.Mongo),
			zap.Bool("redis", status.Redis))
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor checks immediately, then every interval until ctx is done.
func StartHealthMonitor(ctx context.Context, interval time.Duration, mongoProbe, redisProbe Probe) {
	CheckHealth(ctx, mongoProbe, redisProbe)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, mongoProbe, redisProbe)
			}
		}
	}()
}
