package cli

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/config"
	"github.com/BuzzLyutic/taskboard/internal/repo"
	"github.com/BuzzLyutic/taskboard/internal/service"
)

// env is what every subcommand gets after the root has loaded configuration.
type env struct {
	fs         afero.Fs
	configPath string
	cfg        config.Config
	logger     *zap.Logger
}

func NewRoot() *cobra.Command {
	return newRoot(afero.NewOsFs())
}

func newRoot(fs afero.Fs) *cobra.Command {
	e := &env{fs: fs}

	cmd := &cobra.Command{
		Use:           "taskboard",
		Short:         "Task monitoring dashboard backed by a published Google Sheet",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(e.fs, e.configPath)
			if err != nil {
				return err
			}
			e.cfg = cfg

			logger, err := newLogger(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			e.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.PersistentFlags().StringVar(&e.configPath, "config", "", "path to a YAML config file")

	cmd.AddCommand(newServeCmd(e))
	cmd.AddCommand(newTriageCmd(e))
	cmd.AddCommand(newListCmd(e))
	cmd.AddCommand(newShowCmd(e))
	return cmd
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// service wires the configured source, the table cache and the task service.
func (e *env) service(ctx context.Context) (*service.TaskService, error) {
	var source repo.TaskSource
	switch e.cfg.Source.Kind {
	case config.SourceSheets:
		s, err := repo.NewSheetsSource(ctx, repo.SheetsOptions{
			SpreadsheetID:   e.cfg.Source.Sheets.SpreadsheetID,
			Range:           e.cfg.Source.Sheets.Range,
			APIKey:          e.cfg.Source.Sheets.APIKey,
			CredentialsFile: e.cfg.Source.Sheets.CredentialsFile,
			Timeout:         e.cfg.FetchTimeout,
		})
		if err != nil {
			return nil, err
		}
		source = s
	default:
		source = repo.NewCSVSource(e.cfg.Source.CSVURL, e.cfg.FetchTimeout)
	}

	loc, err := e.cfg.Location()
	if err != nil {
		return nil, err
	}

	cache := repo.NewTableCache(e.cfg.CacheTTL, e.logger)
	return service.NewTaskService(source, cache, service.Settings{
		DoneStatus:  e.cfg.DoneStatus,
		TriageLimit: e.cfg.TriageLimit,
		Location:    loc,
		CreateURL:   e.cfg.Forms.CreateURL,
		UpdateBase:  e.cfg.Forms.UpdateBase,
	}, e.logger), nil
}
