package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"cart-normalizer/internal/core/cart"
	"cart-normalizer/internal/infrastructure/config"
	"cart-normalizer/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisStore 以 Redis 為後端的解析結果快取，供多實例部署共用
type RedisStore struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewRedisStore 創建 Redis 快取
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		config: &cfg.Cache,
	}, nil
}

// Get 查詢快取的解析結果
func (s *RedisStore) Get(ctx context.Context, menuName, normalizedText string) (*cart.Snapshot, error) {
	data, err := s.client.Get(ctx, generateKey(menuName, normalizedText)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var snap cart.Snapshot
	if err := common.ParseJSONBytes(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}
	return &snap, nil
}

// Set 寫入解析結果
func (s *RedisStore) Set(ctx context.Context, menuName, normalizedText string, snap cart.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, generateKey(menuName, normalizedText), data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Stats 快取統計資訊
func (s *RedisStore) Stats() map[string]interface{} {
	return map[string]interface{}{
		"backend": "redis",
		"addr":    s.config.RedisAddr,
	}
}

// Close 關閉 Redis 連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
