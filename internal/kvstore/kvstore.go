// Package kvstore trừu tượng hóa key-value store dùng cho persistence
// của notification feed. Implementation chính là Redis; MemoryStore dùng
// cho test và môi trường không có Redis.
package kvstore

import (
	"context"
	"sync"
)

// Store là key-value store tối giản: get/set/remove.
// Get trả về ("", false, nil) khi key không tồn tại — không phải lỗi.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

// MemoryStore là Store trong bộ nhớ, thread-safe
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStore tạo MemoryStore rỗng
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

// Get lấy giá trị theo key
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	return value, ok, nil
}

// Set lưu giá trị theo key
func (s *MemoryStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Remove xóa key, không lỗi nếu key không tồn tại
func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
