package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arohiabhilasha/FocusFlow/pkg/config"
	"github.com/arohiabhilasha/FocusFlow/pkg/google"
	"github.com/arohiabhilasha/FocusFlow/pkg/logging"
	"github.com/arohiabhilasha/FocusFlow/pkg/storage"
	"github.com/arohiabhilasha/FocusFlow/pkg/suggest"
	"github.com/arohiabhilasha/FocusFlow/pkg/tasks"
)

// newGenerator builds the suggestion service client. Tests replace it.
var newGenerator = func(ctx context.Context, cfg *config.Config) (suggest.Generator, func() error, error) {
	client, err := google.NewClient(ctx, cfg.Suggest.APIKey)
	if err != nil {
		return nil, nil, err
	}
	g := google.NewGemini(client, cfg.Suggest.Model)
	return g, g.Close, nil
}

type app struct {
	cfg     *config.Config
	log     *logging.Logger
	adapter *storage.Adapter
	store   *tasks.Store
}

// openApp loads the configuration and the stored task list. Interactive
// sessions log to a file so nothing is written over the screen.
func openApp(cmd *cobra.Command, opts *rootOptions, interactive bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cmd, cfg, opts.quiet, interactive)
	if err != nil {
		return nil, err
	}

	adapter, err := storage.Open(cfg.Storage.Backend, cfg.StorageDir(), log)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	return &app{
		cfg:     cfg,
		log:     log,
		adapter: adapter,
		store:   tasks.Open(adapter, tasks.WithLogger(log)),
	}, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config, quiet, interactive bool) (*logging.Logger, error) {
	switch {
	case quiet:
		return logging.NewNop(), nil
	case cfg.Logging.Dir != "":
		return logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	case interactive:
		return logging.NewLogger(config.ConfigDir(), cfg.Logging.Level)
	default:
		return logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level), nil
	}
}

func (a *app) Close() {
	if err := a.adapter.Close(); err != nil {
		a.log.Warn("failed to close storage", "error", err)
	}
	a.log.Close()
}

// saved reports the last save failure as a command error.
func (a *app) saved() error {
	if err := a.store.LastSaveError(); err != nil {
		return fmt.Errorf("changes were not saved: %w", err)
	}
	return nil
}

// gateway returns a suggestion gateway. Without credentials it still works and
// always answers with the fallback list.
func (a *app) gateway(ctx context.Context) (*suggest.Gateway, func()) {
	if ctx == nil {
		ctx = context.Background()
	}
	gen, closeGen, err := newGenerator(ctx, a.cfg)
	if err != nil {
		a.log.Warn("suggestion service unavailable", "error", err)
		return suggest.NewGateway(nil, a.cfg.Suggest.DefaultIntent, a.log), func() {}
	}
	return suggest.NewGateway(gen, a.cfg.Suggest.DefaultIntent, a.log), func() {
		if err := closeGen(); err != nil {
			a.log.Debug("failed to close suggestion client", "error", err)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
