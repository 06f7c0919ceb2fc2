package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"flora_commerce/config"
	"flora_commerce/internal/logger"
)

// GetRedisInstance khởi tạo và trả về *redis.Client từ config.
// Redis lưu notification feed của từng session (persistence qua reload).
func GetRedisInstance(c *config.Configuration) (*redis.Client, error) {
	if c.Redis_Address == "" {
		return nil, fmt.Errorf("redis address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         c.Redis_Address,
		Password:     c.Redis_Password,
		DB:           c.Redis_DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Kiểm tra kết nối
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logger.GetAppLogger().Info("Successfully connected to Redis")
	return client, nil
}

// CloseRedisInstance đóng kết nối Redis client
func CloseRedisInstance(client *redis.Client) error {
	if err := client.Close(); err != nil {
		logger.GetAppLogger().WithError(err).Error("Failed to close Redis client")
		return err
	}
	logger.GetAppLogger().Info("Successfully disconnected from Redis")
	return nil
}
