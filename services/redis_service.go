package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// InterfaceRedisService 定义Redis服务接口
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheDashboardStats(userID uint, stats interface{}, expiration time.Duration) error
	GetDashboardStats(userID uint, dest interface{}) error
	InvalidateDashboardStats(userID uint) error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(client *redis.Client) InterfaceRedisService {
	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheDashboardStats caches dashboard statistics for a user with expiration
func (s *RedisService) CacheDashboardStats(userID uint, stats interface{}, expiration time.Duration) error {
	key := fmt.Sprintf("dashboard_stats:%d", userID)
	return s.Set(key, stats, expiration)
}

// GetDashboardStats gets cached dashboard statistics for a user
func (s *RedisService) GetDashboardStats(userID uint, dest interface{}) error {
	key := fmt.Sprintf("dashboard_stats:%d", userID)
	return s.Get(key, dest)
}

// InvalidateDashboardStats removes cached dashboard statistics for a user
func (s *RedisService) InvalidateDashboardStats(userID uint) error {
	key := fmt.Sprintf("dashboard_stats:%d", userID)
	return s.Delete(key)
}
