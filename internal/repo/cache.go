package repo

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

// LoadFunc produces a fresh base table. The cache stamps ID and LoadedAt.
type LoadFunc func(ctx context.Context) (model.Table, error)

// TableCache memoizes base tables per source locator for a fixed TTL.
// Concurrent misses on one key share a single load. Failures are not cached.
type TableCache struct {
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
	mu      sync.RWMutex
	entries map[string]model.Table
	gens    map[string]uint64
	group   singleflight.Group
}

func NewTableCache(ttl time.Duration, logger *zap.Logger) *TableCache {
	return &TableCache{
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
		entries: make(map[string]model.Table),
		gens:    make(map[string]uint64),
	}
}

// SetClock replaces the time source; used by tests.
func (c *TableCache) SetClock(now func() time.Time) {
	c.now = now
}

func (c *TableCache) Get(ctx context.Context, key string, load LoadFunc) (model.Table, error) {
	if t, ok := c.fresh(key); ok {
		return t, nil
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		if t, ok := c.fresh(key); ok {
			return t, nil
		}

		c.mu.RLock()
		gen := c.gens[key]
		c.mu.RUnlock()

		start := c.now()
		// the load outlives a single caller giving up
		t, err := load(context.WithoutCancel(ctx))
		if err != nil {
			c.logger.Error("table load failed", zap.String("source", key), zap.Error(err))
			return model.Table{}, err
		}

		t.Source = key
		t.LoadedAt = c.now()
		t.ID = ulid.MustNew(ulid.Timestamp(t.LoadedAt), ulid.DefaultEntropy()).String()

		c.mu.Lock()
		stale := c.gens[key] != gen
		if !stale {
			c.entries[key] = t
		}
		c.mu.Unlock()

		if stale {
			// Invalidate ran during the load; a newer load owns the entry.
			c.logger.Debug("discarding table loaded before invalidate",
				zap.String("source", key), zap.String("table_id", t.ID))
			return t, nil
		}

		c.logger.Info("table loaded",
			zap.String("source", key),
			zap.String("table_id", t.ID),
			zap.Int("tasks", len(t.Tasks)),
			zap.Duration("took", t.LoadedAt.Sub(start)),
		)
		return t, nil
	})
	if err != nil {
		return model.Table{}, err
	}
	if shared {
		c.logger.Debug("table load shared", zap.String("source", key))
	}
	return v.(model.Table), nil
}

// Invalidate drops the cached table for key so the next Get refetches.
// Loads already running for key keep serving their callers but are not stored.
func (c *TableCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.gens[key]++
	c.mu.Unlock()
	c.group.Forget(key)
}

func (c *TableCache) fresh(key string) (model.Table, bool) {
	c.mu.RLock()
	t, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().Sub(t.LoadedAt) >= c.ttl {
		return model.Table{}, false
	}
	return t, true
}
