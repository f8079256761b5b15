package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// TypedCache wraps a CacheService with typed reads. L1 hands back the stored
// value itself while L2 hands back JSON, so every hit is funnelled through
// decodeCached and then the optional load hook.
type TypedCache[T any] struct {
	cache  CacheService
	onLoad func(T) (T, error)
}

func NewTypedCache[T any](cache CacheService) *TypedCache[T] {
	return &TypedCache[T]{cache: cache}
}

// OnLoad registers fn to run on every hit before Get returns it. An error
// from fn is treated like an undecodable entry.
func (tc *TypedCache[T]) OnLoad(fn func(T) (T, error)) *TypedCache[T] {
	tc.onLoad = fn
	return tc
}

func (tc *TypedCache[T]) Set(key string, value T, expiration time.Duration) error {
	return tc.cache.SetCache(key, value, expiration)
}

// Get reports exists=true with a non-nil error when an entry was present but
// unusable. Such entries are evicted so the next read is a clean miss.
func (tc *TypedCache[T]) Get(key string) (T, bool, error) {
	var zero T

	rawValue, exists := tc.cache.GetCache(key)
	if !exists {
		return zero, false, nil
	}

	value, err := decodeCached[T](rawValue)
	if err == nil && tc.onLoad != nil {
		value, err = tc.onLoad(value)
	}
	if err != nil {
		if delErr := tc.cache.DelCache(key); delErr != nil {
			err = fmt.Errorf("%w (evict: %v)", err, delErr)
		}
		return zero, true, err
	}
	return value, true, nil
}

func (tc *TypedCache[T]) Delete(key string) error {
	return tc.cache.DelCache(key)
}

func decodeCached[T any](raw interface{}) (T, error) {
	var result T
	var data []byte
	switch v := raw.(type) {
	case T:
		return v, nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		var err error
		if data, err = json.Marshal(raw); err != nil {
			return result, fmt.Errorf("failed to marshal intermediate value: %w", err)
		}
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return result, nil
}
