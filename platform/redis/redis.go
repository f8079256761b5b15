package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"project_analysis_backend/config"
	"project_analysis_backend/pkg/logging"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "analysis:"

// opTimeout bounds every cache round trip; a slow Redis degrades to a miss.
const opTimeout = 2 * time.Second

type Service struct {
	Rdb *redis.Client
}

func InitRedis(cfg *config.Config) (*Service, error) {
	redisUrl := cfg.RedisURL
	if redisUrl == "" {
		return nil, fmt.Errorf("empty redis url")
	}
	opt, err := redis.ParseURL(redisUrl)
	if err != nil {
		return nil, fmt.Errorf("could not parse Redis URL: %w", err)
	}
	rdb := redis.NewClient(opt)

	testCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rdb.Ping(testCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	logging.Logger.Info("Connected to Redis", "addr", opt.Addr)
	return &Service{Rdb: rdb}, nil
}

func (s *Service) SetCache(key string, value interface{}, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.Rdb.Set(ctx, keyPrefix+key, jsonData, expiration).Err()
}

// GetCache returns the raw JSON string; TypedCache decodes it.
func (s *Service) GetCache(key string) (interface{}, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	val, err := s.Rdb.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Logger.Warn("redis get failed", "error", err, "key", key)
		}
		return nil, false
	}
	return val, true
}

func (s *Service) DelCache(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.Rdb.Del(ctx, keyPrefix+key).Err()
}

func (s *Service) Close() error {
	return s.Rdb.Close()
}
