package commands

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/bootstrap"
	"github.com/cabmobile/monitor/internal/config"
	"github.com/cabmobile/monitor/internal/logger"
	"github.com/cabmobile/monitor/internal/session"
)

// env is what every command needs: configuration, a logger and the session store
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	sessions *session.Store
	close    func()
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.IsDevelopment(), cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	prefs, closePrefs, err := bootstrap.OpenPreferences(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewStore(ctx, prefs, log)
	if err != nil {
		closePrefs()
		return nil, err
	}

	return &env{
		cfg:      cfg,
		logger:   log,
		sessions: sessions,
		close: func() {
			closePrefs()
			if err := logger.Sync(log); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to flush logs: %v\n", err)
			}
		},
	}, nil
}
