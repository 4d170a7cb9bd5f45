package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/handler"
	"github.com/BuzzLyutic/taskboard/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
			defer signal.Stop(quit)

			return serve(cmd.Context(), e, quit)
		},
	}
}

func serve(ctx context.Context, e *env, quit <-chan os.Signal) error {
	logger := e.logger

	svc, err := e.service(ctx)
	if err != nil {
		return err
	}

	// Первая загрузка заранее, ошибка не фатальна
	if table, err := svc.Table(ctx); err != nil {
		logger.Warn("initial load failed", zap.Error(err))
	} else {
		logger.Info("Table loaded", zap.String("table_id", table.ID), zap.Int("tasks", len(table.Tasks)))
	}

	if e.cfg.RefreshInterval > 0 {
		warmer := worker.NewWarmer(svc, logger, e.cfg.RefreshInterval)
		warmer.Start(ctx)
		defer warmer.Stop()
	}

	srv := http.Server{
		Addr:         ":" + e.cfg.Port,
		Handler:      handler.NewRouter(handler.NewTaskHandler(svc, logger), logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: e.cfg.FetchTimeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-quit:
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
