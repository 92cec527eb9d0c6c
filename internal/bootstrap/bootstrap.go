// Package bootstrap builds the application object graph once at start.
package bootstrap

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/camera"
	"github.com/cabmobile/monitor/internal/config"
	"github.com/cabmobile/monitor/internal/domain"
	"github.com/cabmobile/monitor/internal/repository/memory"
	"github.com/cabmobile/monitor/internal/repository/postgres"
	"github.com/cabmobile/monitor/internal/repository/sqlite"
	"github.com/cabmobile/monitor/internal/screen"
	"github.com/cabmobile/monitor/internal/service"
	"github.com/cabmobile/monitor/internal/session"
)

// App is the wired application
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Prefs      domain.Preferences
	Session    *session.Store
	Loader     *service.StatisticsLoader
	Home       *screen.Home
	Statistics *screen.Statistics
	Camera     *screen.Camera
	Navigator  *screen.Navigator

	closers []func()
}

// OpenPreferences opens the store selected by cfg.StoreDriver. An unreachable
// postgres falls back to an in-memory store so the app still starts.
func OpenPreferences(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domain.Preferences, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("using in-memory session store; sessions will not survive restarts")
		return memory.NewPreferencesRepository(), func() {}, nil

	case config.StorePostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(connectCtx, cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(connectCtx)
		}
		if err == nil {
			repo := postgres.NewPreferencesRepository(pool, domain.PreferencesNamespace)
			if err = repo.EnsureSchema(connectCtx); err == nil {
				logger.Info("connected to PostgreSQL session store")
				return repo, pool.Close, nil
			}
		}
		if pool != nil {
			pool.Close()
		}
		logger.Warn("could not connect to database, using in-memory session store", zap.Error(err))
		return memory.NewPreferencesRepository(), func() {}, nil

	default:
		repo, err := sqlite.Open(cfg.StorePath, domain.PreferencesNamespace)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open session store: %w", err)
		}
		logger.Info("opened sqlite session store", zap.String("path", cfg.StorePath))
		return repo, func() {
			if err := repo.Close(); err != nil {
				logger.Warn("failed to close session store", zap.Error(err))
			}
		}, nil
	}
}

// NewStatisticsAPI returns the HTTP client, or the demo source in mock mode
func NewStatisticsAPI(cfg *config.Config, logger *zap.Logger) domain.StatisticsAPI {
	if cfg.MockMode() {
		logger.Info("API_BASE_URL not set, serving demo statistics")
		return service.NewMockDetectionAPI()
	}
	return service.NewDetectionClient(cfg.APIBaseURL, service.NewHTTPClient(cfg.HTTPTimeout), logger)
}

// New wires every component and mounts the start screen. ctx bounds the
// lifetime of background work started by screens.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	prefs, closePrefs, err := OpenPreferences(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, Prefs: prefs, closers: []func(){closePrefs}}

	app.Session, err = session.NewStore(ctx, prefs, logger)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Loader = service.NewStatisticsLoader(NewStatisticsAPI(cfg, logger), app.Session, logger)

	provider := camera.NewHTTPProvider(
		cfg.CameraBackURL,
		cfg.CameraFrontURL,
		cfg.CameraFrameInterval,
		service.NewHTTPClient(cfg.HTTPTimeout),
		logger,
	)
	ctrl := camera.NewController(provider, camera.StaticPermission(cfg.CameraPermission), logger)

	app.Home = screen.NewHome(screen.DefaultTips(), cfg.TipInterval, logger)
	app.Statistics = screen.NewStatistics(app.Loader, logger)
	app.Camera = screen.NewCamera(ctrl, logger)

	app.Navigator, err = screen.NewNavigator(ctx, screen.RouteMain, logger, app.Home, app.Statistics, app.Camera)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.closers = append(app.closers, app.Navigator.Close)

	app.watchSession()
	return app, nil
}

// watchSession reloads the visible statistics screen when the user logs in or out
func (a *App) watchSession() {
	var subscribed atomic.Bool
	unsubscribe := a.Session.Authenticated().Subscribe(func(authenticated bool) {
		if !subscribed.Swap(true) {
			return
		}
		if a.Navigator.Current().Get() != screen.RouteStatistics {
			return
		}
		a.Logger.Info("session changed, reloading statistics", zap.Bool("authenticated", authenticated))
		a.Statistics.Retry()
	})
	a.closers = append(a.closers, unsubscribe)
}

// Health checks the session store
func (a *App) Health(ctx context.Context) error {
	return a.Prefs.Health(ctx)
}

// Close releases resources in reverse order of acquisition
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
