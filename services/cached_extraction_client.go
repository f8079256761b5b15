package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"project_analysis_backend/models"
	"project_analysis_backend/pkg/logging"
	"project_analysis_backend/platform/cache"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
)

// ResultCache stores extraction results by segment hash.
type ResultCache struct {
	store *cache.TypedCache[*models.AnalysisResult]
	ttl   time.Duration
}

func NewResultCache(cacheService cache.CacheService, ttl time.Duration) *ResultCache {
	return &ResultCache{
		store: cache.NewTypedCache[*models.AnalysisResult](cacheService).OnLoad(loadCachedAnalysis),
		ttl:   ttl,
	}
}

// loadCachedAnalysis hands out a private, normalized copy of a hit. L1 hits
// are the stored pointer and L2 hits may predate a schema field.
func loadCachedAnalysis(res *models.AnalysisResult) (*models.AnalysisResult, error) {
	if res == nil {
		return nil, errors.New("cached analysis is null")
	}
	return res.Clone().Normalize(), nil
}

func (rc *ResultCache) get(key string) (*models.AnalysisResult, bool) {
	res, ok, err := rc.store.Get(key)
	if err != nil {
		logging.Logger.Warn("dropped unreadable cached analysis", "error", err, "key", key)
		return nil, false
	}
	return res, ok
}

func (rc *ResultCache) set(key string, res *models.AnalysisResult) {
	if err := rc.store.Set(key, res.Clone(), rc.ttl); err != nil {
		logging.Logger.Warn("failed to cache analysis", "error", err, "key", key)
	}
}

// CachedExtractionClient serves repeated segments from the result cache and
// collapses concurrent identical requests into one model call.
type CachedExtractionClient struct {
	inner ExtractionClient
	model string
	cache *ResultCache
	group singleflight.Group
}

func NewCachedExtractionClient(inner ExtractionClient, model string, rc *ResultCache) *CachedExtractionClient {
	return &CachedExtractionClient{inner: inner, model: model, cache: rc}
}

func (c *CachedExtractionClient) Name() string { return c.inner.Name() }

func (c *CachedExtractionClient) Extract(ctx context.Context, segment string, isFirst bool) (*models.AnalysisResult, error) {
	key := c.key(segment, isFirst)
	if res, ok := c.cache.get(key); ok {
		logging.Logger.Debug("analysis cache hit", "key", key[:12])
		return res, nil
	}

	// The shared call outlives any single waiter; the inner client still
	// applies its own per-call timeout.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		res, err := c.inner.Extract(shared, segment, isFirst)
		if err != nil {
			return nil, err
		}
		c.cache.set(key, res)
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*models.AnalysisResult).Clone(), nil
	}
}

func (c *CachedExtractionClient) key(segment string, isFirst bool) string {
	h := sha256.New()
	h.Write([]byte(c.inner.Name()))
	h.Write([]byte{'|'})
	h.Write([]byte(c.model))
	h.Write([]byte{'|'})
	h.Write([]byte(strconv.FormatBool(isFirst)))
	h.Write([]byte{'|'})
	h.Write([]byte(segment))
	return hex.EncodeToString(h.Sum(nil))
}
