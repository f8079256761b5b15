package services

import (
	"context"
	"errors"
	"project_analysis_backend/models"
	"project_analysis_backend/platform/cache"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestCache() cache.CacheService {
	return cache.NewCacheService(cache.InitL1Cache(), nil)
}

type countingClient struct {
	calls atomic.Int32
	err   error
	delay time.Duration
}

func (c *countingClient) Name() string { return "counting" }

func (c *countingClient) Extract(ctx context.Context, segment string, isFirst bool) (*models.AnalysisResult, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.err != nil {
		return nil, c.err
	}
	return (&models.AnalysisResult{ProjectName: segment, Requirements: []string{"r1"}}).Normalize(), nil
}

func TestCachedExtractionClient_HitsCache(t *testing.T) {
	inner := &countingClient{}
	c := NewCachedExtractionClient(inner, "gpt-4", NewResultCache(newTestCache(), time.Minute))
	ctx := context.Background()

	first, err := c.Extract(ctx, "seg", true)
	if err != nil {
		t.Fatal(err)
	}
	first.Requirements[0] = "mutated"

	second, err := c.Extract(ctx, "seg", true)
	if err != nil {
		t.Fatal(err)
	}
	if inner.calls.Load() != 1 {
		t.Errorf("expected one inner call, got %d", inner.calls.Load())
	}
	if second.Requirements[0] != "r1" {
		t.Error("cached value was aliased by a caller")
	}

	if _, err := c.Extract(ctx, "seg", false); err != nil {
		t.Fatal(err)
	}
	if inner.calls.Load() != 2 {
		t.Error("isFirst must be part of the cache key")
	}
}

func TestCachedExtractionClient_ErrorsNotCached(t *testing.T) {
	inner := &countingClient{err: errors.New("rate limited")}
	c := NewCachedExtractionClient(inner, "gpt-4", NewResultCache(newTestCache(), time.Minute))

	for i := 0; i < 2; i++ {
		if _, err := c.Extract(context.Background(), "seg", true); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls.Load() != 2 {
		t.Errorf("failed calls should not be cached, got %d inner calls", inner.calls.Load())
	}
}

func TestCachedExtractionClient_CollapsesConcurrentCalls(t *testing.T) {
	inner := &countingClient{delay: 50 * time.Millisecond}
	c := NewCachedExtractionClient(inner, "gpt-4", NewResultCache(newTestCache(), time.Minute))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Extract(context.Background(), "same", true); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if n := inner.calls.Load(); n != 1 {
		t.Errorf("expected one inner call, got %d", n)
	}
}

// gatedClient blocks every call until release is closed and fails if the
// context it was handed is cancelled first.
type gatedClient struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (c *gatedClient) Name() string { return "gated" }

func (c *gatedClient) Extract(ctx context.Context, segment string, isFirst bool) (*models.AnalysisResult, error) {
	if c.calls.Add(1) == 1 {
		close(c.started)
	}
	select {
	case <-c.release:
		return (&models.AnalysisResult{ProjectName: segment}).Normalize(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestCachedExtractionClient_CancelledWaiterDoesNotFailOthers(t *testing.T) {
	inner := &gatedClient{started: make(chan struct{}), release: make(chan struct{})}
	c := NewCachedExtractionClient(inner, "gpt-4", NewResultCache(newTestCache(), time.Minute))

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.Extract(ctxA, "shared", true)
		errA <- err
	}()
	<-inner.started

	type outcome struct {
		res *models.AnalysisResult
		err error
	}
	resB := make(chan outcome, 1)
	go func() {
		res, err := c.Extract(context.Background(), "shared", true)
		resB <- outcome{res, err}
	}()
	// let B join the in-flight call before A goes away
	time.Sleep(20 * time.Millisecond)

	cancelA()
	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller: expected context.Canceled, got %v", err)
	}

	close(inner.release)
	got := <-resB
	if got.err != nil {
		t.Fatalf("remaining caller failed: %v", got.err)
	}
	if got.res.ProjectName != "shared" {
		t.Errorf("unexpected result: %+v", got.res)
	}
	if n := inner.calls.Load(); n != 1 {
		t.Errorf("expected one inner call, got %d", n)
	}

	// the shared call finished and populated the cache
	if _, err := c.Extract(ctxA, "shared", true); err != nil {
		t.Errorf("cached read with a cancelled context: %v", err)
	}
}

func TestResultCache_NormalizesAndDropsBadEntries(t *testing.T) {
	cs := newTestCache()
	rc := NewResultCache(cs, time.Minute)

	_ = cs.SetCache("old", `{"projectName":"Legacy"}`, time.Minute)
	got, ok := rc.get("old")
	if !ok || got.ProjectName != "Legacy" {
		t.Fatalf("get: %+v ok=%v", got, ok)
	}
	if got.Phases == nil || got.Personas == nil || got.Requirements == nil {
		t.Error("decoded entry should be normalized")
	}

	_ = cs.SetCache("null", "null", time.Minute)
	if _, ok := rc.get("null"); ok {
		t.Error("null entry should read as a miss")
	}
	if _, ok := cs.GetCache("null"); ok {
		t.Error("null entry should be evicted")
	}
}
