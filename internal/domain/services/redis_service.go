package services

import (
	"context"
	"encoding/json"
	"time"

	"hrlink-http-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	EnqueueJob(queueKey string, job interface{}) error
	DequeueJob(ctx context.Context, queueKey string, timeout time.Duration, dest interface{}) (bool, error)
	QueueLength(queueKey string) (int64, error)
	Ping() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// 1 Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// 2 Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// 3 Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// 4 EnqueueJob 将一个任务推入队列（LPUSH，JSON序列化）
func (s *RedisService) EnqueueJob(queueKey string, job interface{}) error {
	jsonValue, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.Client.LPush(s.Ctx, queueKey, jsonValue).Err()
}

// 5 DequeueJob 从队列阻塞弹出一个任务（BRPOP）。
// 超时返回 (false, nil)，调用方据此继续下一轮轮询。
func (s *RedisService) DequeueJob(ctx context.Context, queueKey string, timeout time.Duration, dest interface{}) (bool, error) {
	vals, err := s.Client.BRPop(ctx, timeout, queueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	// BRPOP返回 [key, value]
	if len(vals) < 2 {
		return false, nil
	}
	if err := json.Unmarshal([]byte(vals[1]), dest); err != nil {
		return false, err
	}
	return true, nil
}

// 6 QueueLength 获取队列长度
func (s *RedisService) QueueLength(queueKey string) (int64, error) {
	return s.Client.LLen(s.Ctx, queueKey).Result()
}

// 7 Ping 检查Redis连通性
func (s *RedisService) Ping() error {
	ctx, cancel := context.WithTimeout(s.Ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx).Err()
}
