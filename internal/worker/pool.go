package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

// Reloader is the part of the task service the warmer drives.
type Reloader interface {
	Reload(ctx context.Context) (model.Table, error)
}

// Warmer reloads the base table on a fixed interval so that page views
// rarely pay for a fetch.
type Warmer struct {
	service  Reloader
	logger   *zap.Logger
	interval time.Duration
	wg       sync.WaitGroup
	stop     chan struct{}
	once     sync.Once
}

func NewWarmer(service Reloader, logger *zap.Logger, interval time.Duration) *Warmer {
	return &Warmer{
		service:  service,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (w *Warmer) Start(ctx context.Context) {
	w.logger.Info("Starting cache warmer", zap.Duration("interval", w.interval))

	w.wg.Add(1)
	go w.run(ctx)
}

// Stop waits for an in-flight reload to finish. It is safe to call twice.
func (w *Warmer) Stop() {
	w.once.Do(func() {
		w.logger.Info("Stopping cache warmer...")
		close(w.stop)
	})
	w.wg.Wait()
	w.logger.Info("Cache warmer stopped")
}

func (w *Warmer) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *Warmer) refresh(ctx context.Context) {
	start := time.Now()
	table, err := w.service.Reload(ctx)
	if err != nil {
		// Кэш уже сброшен, следующий запрос страницы попробует снова
		w.logger.Error("warm reload failed", zap.Error(err))
		return
	}
	w.logger.Info("Table refreshed",
		zap.String("table_id", table.ID),
		zap.Int("tasks", len(table.Tasks)),
		zap.Duration("took", time.Since(start)),
	)
}
