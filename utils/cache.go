// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"bookrental/config"

	"github.com/go-redis/redis/v8"
)

// RentalCacheClient is the Redis client backing rental persistence:
// the committed-rentals mirror and the live booking draft mirror.
var RentalCacheClient *redis.Client

// InitRentalCache initializes the Redis client for rental persistence
// (using the DB index from AppConfig).
func InitRentalCache() {
	RentalCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRentalDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := RentalCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Rental Cache): %v", err)
	}
}

// GetRentalCacheClient returns the Redis client for rental persistence.
func GetRentalCacheClient() *redis.Client {
	if RentalCacheClient == nil {
		InitRentalCache()
	}
	return RentalCacheClient
}
