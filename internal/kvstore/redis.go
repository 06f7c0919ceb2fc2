package kvstore

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// RedisStore là Store trên Redis.
// Key không đặt TTL — feed tồn tại qua reload cho đến khi clearAll.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore tạo RedisStore từ client đã kết nối
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get lấy giá trị theo key. Key không tồn tại trả về ok = false, không lỗi.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set lưu giá trị theo key
func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Remove xóa key
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
