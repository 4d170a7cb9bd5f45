package repo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestCache(ttl time.Duration) (*TableCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	cache := NewTableCache(ttl, zap.NewNop())
	cache.SetClock(clock.Now)
	return cache, clock
}

func countingLoad(calls *atomic.Int32) LoadFunc {
	return func(ctx context.Context) (model.Table, error) {
		n := calls.Add(1)
		return model.Table{Tasks: make([]model.Task, n)}, nil
	}
}

func TestTableCache_HitWithinTTL(t *testing.T) {
	cache, clock := newTestCache(600 * time.Second)
	var calls atomic.Int32
	ctx := context.Background()

	first, err := cache.Get(ctx, "src", countingLoad(&calls))
	require.NoError(t, err)
	assert.Equal(t, "src", first.Source)
	assert.Equal(t, clock.Now(), first.LoadedAt)
	_, err = ulid.Parse(first.ID)
	assert.NoError(t, err, "table id is a ULID")

	clock.Advance(599 * time.Second)
	second, err := cache.Get(ctx, "src", countingLoad(&calls))
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first.ID, second.ID)
}

func TestTableCache_ExpiresAfterTTL(t *testing.T) {
	cache, clock := newTestCache(600 * time.Second)
	var calls atomic.Int32
	ctx := context.Background()

	first, err := cache.Get(ctx, "src", countingLoad(&calls))
	require.NoError(t, err)

	clock.Advance(600 * time.Second)
	second, err := cache.Get(ctx, "src", countingLoad(&calls))
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, second.Tasks, 2, "replaced wholesale")
}

func TestTableCache_KeyedByLocator(t *testing.T) {
	cache, _ := newTestCache(time.Minute)
	var calls atomic.Int32
	ctx := context.Background()

	_, err := cache.Get(ctx, "a", countingLoad(&calls))
	require.NoError(t, err)
	_, err = cache.Get(ctx, "b", countingLoad(&calls))
	require.NoError(t, err)
	_, err = cache.Get(ctx, "a", countingLoad(&calls))
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}

func TestTableCache_FailureNotCached(t *testing.T) {
	cache, _ := newTestCache(time.Minute)
	ctx := context.Background()
	boom := &LoadError{Source: "src", Err: ErrUnreachable}

	var calls atomic.Int32
	failing := func(ctx context.Context) (model.Table, error) {
		calls.Add(1)
		return model.Table{}, boom
	}

	_, err := cache.Get(ctx, "src", failing)
	assert.ErrorIs(t, err, ErrUnreachable)
	_, err = cache.Get(ctx, "src", failing)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, int32(2), calls.Load(), "no retry inside Get, but no negative caching either")

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestTableCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	var calls atomic.Int32
	ctx := context.Background()

	_, err := cache.Get(ctx, "src", countingLoad(&calls))
	require.NoError(t, err)

	cache.Invalidate("src")

	table, err := cache.Get(ctx, "src", countingLoad(&calls))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Len(t, table.Tasks, 2)
}

func TestTableCache_LoadStartedBeforeInvalidateIsNotStored(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	oldLoad := func(ctx context.Context) (model.Table, error) {
		close(started)
		<-release
		return model.Table{Tasks: []model.Task{{ID: "OLD"}}}, nil
	}
	newLoad := func(ctx context.Context) (model.Table, error) {
		return model.Table{Tasks: []model.Task{{ID: "NEW"}}}, nil
	}

	oldDone := make(chan model.Table, 1)
	go func() {
		table, err := cache.Get(ctx, "src", oldLoad)
		assert.NoError(t, err)
		oldDone <- table
	}()
	<-started

	cache.Invalidate("src")
	fresh, err := cache.Get(ctx, "src", newLoad)
	require.NoError(t, err)
	require.Equal(t, "NEW", fresh.Tasks[0].ID)

	close(release)
	old := <-oldDone
	assert.Equal(t, "OLD", old.Tasks[0].ID, "the earlier caller still gets its own load")

	cached, err := cache.Get(ctx, "src", func(ctx context.Context) (model.Table, error) {
		return model.Table{}, errors.New("should be served from cache")
	})
	require.NoError(t, err)
	assert.Equal(t, "NEW", cached.Tasks[0].ID)
	assert.Equal(t, fresh.ID, cached.ID)
}

func TestTableCache_ConcurrentMissesShareOneLoad(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	slow := func(ctx context.Context) (model.Table, error) {
		calls.Add(1)
		<-release
		return model.Table{Tasks: []model.Task{{ID: "T1"}}}, nil
	}

	const goroutines = 20
	var wg sync.WaitGroup
	ids := make([]string, goroutines)
	errs := make([]error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			table, err := cache.Get(ctx, "src", slow)
			ids[idx], errs[idx] = table.ID, err
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := range errs {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestTableCache_CallerCancelDoesNotAbortLoad(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	table, err := cache.Get(ctx, "src", func(ctx context.Context) (model.Table, error) {
		if ctx.Err() != nil {
			return model.Table{}, ctx.Err()
		}
		return model.Table{Tasks: []model.Task{{ID: "T1"}}}, nil
	})
	require.NoError(t, err)
	assert.Len(t, table.Tasks, 1)
}
