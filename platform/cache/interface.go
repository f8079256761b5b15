package cache

import "time"

// CacheService is the read-through cache used for extraction results.
type CacheService interface {
	GetCache(key string) (interface{}, bool)
	SetCache(key string, value interface{}, expiration time.Duration) error
	DelCache(key string) error
}
