package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const healthProbeInterval = 60 * time.Second

// HealthStatus is the latest dependency snapshot served on the health route.
type HealthStatus struct {
	Healthy   bool            `json:"healthy"`
	Services  map[string]bool `json:"services"`
	CheckedAt time.Time       `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the most recent snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes mongo and the named redis clients once
// immediately and then on a fixed interval, keeping the snapshot fresh.
func StartHealthMonitor(redisClients map[string]*redis.Client, mongoClient *mongo.Client) {
	go func() {
		probeHealth(redisClients, mongoClient)

		ticker := time.NewTicker(healthProbeInterval)
		defer ticker.Stop()
		for range ticker.C {
			probeHealth(redisClients, mongoClient)
		}
	}()
}

func probeHealth(redisClients map[string]*redis.Client, mongoClient *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	services := make(map[string]bool, len(redisClients)+1)
	healthy := true

	for name, client := range redisClients {
		ok := client != nil && client.Ping(ctx).Err() == nil
		services["redis:"+name] = ok
		healthy = healthy && ok
	}

	mongoOK := mongoClient != nil && mongoClient.Ping(ctx, nil) == nil
	services["mongo"] = mongoOK
	healthy = healthy && mongoOK

	if !healthy {
		GetLogger().Warn("dependency health check failed", zap.Any("services", services))
	}

	healthMu.Lock()
	currentHealth = HealthStatus{
		Healthy:   healthy,
		Services:  services,
		CheckedAt: time.Now(),
	}
	healthMu.Unlock()
}
