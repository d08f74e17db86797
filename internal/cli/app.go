// Package cli wires configuration, logging, storage and the run manager for the turing command.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/catalog"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/session"
)

// lockTTL bounds how long a crashed replica can hold a run.
const lockTTL = 30 * time.Second

// App holds the long-lived collaborators of one CLI invocation.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    ports.RunStore
	Programs *catalog.Registry
	Registry *prometheus.Registry
	Metrics  *observability.Metrics
	Runs     *session.Manager

	closers []io.Closer
}

// NewApp builds the logger, run store and run manager described by cfg.
func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Programs: catalog.Default(),
		Registry: prometheus.NewRegistry(),
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Log.File != "" {
		logger, closer, err := logging.NewWithFile(level, cfg.Log.File)
		if err != nil {
			return nil, err
		}
		app.Logger = logger
		app.closers = append(app.closers, closer)
	} else {
		app.Logger = logging.New(level)
	}

	app.Metrics = observability.NewMetrics(app.Registry)

	opts := []session.Option{
		session.WithLogger(app.Logger),
		session.WithObserver(app.Metrics),
		session.WithMaxSteps(cfg.Run.MaxSteps),
	}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		app.Store = memory.NewStore()
	case config.DriverFile:
		app.Store = file.New(cfg.Store.Dir)
	case config.DriverRedis:
		rc := cfg.Store.Redis
		store := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithPrefix(rc.Prefix), redis.WithTTL(rc.TTL))
		app.Store = store
		app.closers = append(app.closers, store)
		// Replicas sharing one Redis also share run locks.
		opts = append(opts, session.WithLocker(redis.NewLocker(store.Client(), rc.Prefix), lockTTL))
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.Store.Encryption.Key != "" {
		active, fallback, err := cfg.Store.Encryption.Keys()
		if err != nil {
			return nil, err
		}
		seal, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: active, FallbackKeys: fallback})
		if err != nil {
			return nil, err
		}
		app.Store = middleware.Chain(app.Store, seal)
	}

	app.Runs = session.NewManager(app.Store, app.Programs, opts...)
	app.Logger.Debug("app initialized", "store", cfg.Store.Driver, "encrypted", cfg.Store.Encryption.Key != "", "max_steps", cfg.Run.MaxSteps)
	return app, nil
}

// Close releases the log file and store connections.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
