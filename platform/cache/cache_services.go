package cache

import (
	"project_analysis_backend/pkg/logging"
	"time"
)

// L2Store is the shared second level, satisfied by *redis.Service.
type L2Store interface {
	GetCache(key string) (interface{}, bool)
	SetCache(key string, value interface{}, expiration time.Duration) error
	DelCache(key string) error
}

type Service struct {
	l1 *L1CacheService
	l2 L2Store
}

// NewCacheService layers l1 over l2. l2 may be nil, in which case the cache is
// process-local only.
func NewCacheService(l1 *L1CacheService, l2 L2Store) CacheService {
	return &Service{l1: l1, l2: l2}
}

func (cs *Service) GetCache(key string) (interface{}, bool) {
	if data, ok := cs.l1.Get(key); ok {
		return data, ok
	}
	if cs.l2 == nil {
		return nil, false
	}
	if data, ok := cs.l2.GetCache(key); ok {
		cs.l1.Set(key, data, 0)
		return data, ok
	}
	return nil, false
}

func (cs *Service) SetCache(key string, value interface{}, expiration time.Duration) error {
	if cs.l2 != nil {
		if err := cs.l2.SetCache(key, value, expiration); err != nil {
			logging.Logger.Error("l2 fail SetCache", "error", err, "key", key)
			return err
		}
		// L1 keeps a shorter copy so other instances' deletes propagate quickly.
		cs.l1.Set(key, value, time.Duration(float64(expiration)*0.3))
		return nil
	}
	cs.l1.Set(key, value, expiration)
	return nil
}

func (cs *Service) DelCache(key string) error {
	cs.l1.Del(key)
	if cs.l2 == nil {
		return nil
	}
	if err := cs.l2.DelCache(key); err != nil {
		logging.Logger.Error("l2 fail DelCache", "error", err, "key", key)
		return err
	}
	return nil
}
