package bootstrap

import (
	"project_analysis_backend/config"
	"project_analysis_backend/pkg/logging"
	"project_analysis_backend/platform/cache"
	"project_analysis_backend/platform/redis"
	"project_analysis_backend/platform/storage"
)

type Infrastructure struct {
	Redis   *redis.Service
	Storage *storage.Service
	Cache   cache.CacheService
}

func NewInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{}

	// upload staging
	storageService, err := storage.InitStorageService(cfg)
	if err != nil {
		logging.Logger.Error("fail Initializing upload dir", "error", err)
		return nil, err
	}
	infra.Storage = storageService

	// redis is optional; without it results are cached in-process only
	var l2 cache.L2Store
	if cfg.RedisURL != "" {
		redisService, err := redis.InitRedis(cfg)
		if err != nil {
			logging.Logger.Warn("Redis unavailable, using in-memory cache only", "error", err)
		} else {
			infra.Redis = redisService
			l2 = redisService
		}
	}

	l1CacheService := cache.InitL1Cache()
	infra.Cache = cache.NewCacheService(l1CacheService, l2)

	return infra, nil
}

func (infra *Infrastructure) Shutdown() error {
	if infra.Redis != nil {
		if err := infra.Redis.Close(); err != nil {
			logging.Logger.Error("fail closing redis", "error", err)
			return err
		}
	}
	return nil
}
