package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	electionservice "elect/contexts/governance/election-service"
	postgresadapter "elect/contexts/governance/election-service/adapters/postgres"
	workerapp "elect/contexts/governance/election-service/application/workers"
	"elect/internal/platform/config"
	"elect/internal/platform/db"
	"elect/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	disassociator workerapp.VoterDisassociator
	pollInterval  time.Duration
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg).With("service", cfg.ServiceName, "process", "api")
	module, pg, err := buildElectionModule(cfg, logger)
	if err != nil {
		return nil, err
	}
	if len(cfg.AdminUserIDs) == 0 {
		logger.Warn("no election administrators configured",
			"event", "bootstrap_no_admins",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}

	server := httpserver.New(module, cfg.AdminUserIDs, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

// BuildWorker wires the disassociation sweep. It needs the shared database:
// an in-memory store would only ever see its own empty process.
func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg).With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN, poolConfig(cfg))
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		disassociator: workerapp.VoterDisassociator{
			Elections: repo,
			Votes:     repo,
			Clock:     postgresadapter.SystemClock{},
			Logger:    logger,
		},
		pollInterval: cfg.SweepInterval,
		logger:       logger,
	}, nil
}

// BuildModule returns the election module for the configured store. Used by
// tools that drive the use cases directly.
func BuildModule() (electionservice.Module, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return electionservice.Module{}, nil, err
	}
	logger := newLogger(cfg).With("service", cfg.ServiceName, "process", "cli")
	module, pg, err := buildElectionModule(cfg, logger)
	if err != nil {
		return electionservice.Module{}, nil, err
	}
	return module, pg.Close, nil
}

func poolConfig(cfg config.Config) db.PoolConfig {
	return db.PoolConfig{
		MaxOpenConns:    cfg.PostgresMaxOpenConns,
		MaxIdleConns:    cfg.PostgresMaxIdleConns,
		ConnMaxLifetime: cfg.PostgresConnMaxLifetime,
	}
}

func buildElectionModule(cfg config.Config, logger *slog.Logger) (electionservice.Module, *db.Postgres, error) {
	if cfg.ElectionStore == config.StoreMemory {
		logger.Info("using in-memory election store",
			"event", "bootstrap_memory_store",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return electionservice.NewInMemoryModule(nil, logger), nil, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN, poolConfig(cfg))
	if err != nil {
		return electionservice.Module{}, nil, err
	}
	repo := postgresadapter.NewRepository(pg.DB, logger)
	module := electionservice.NewModule(electionservice.Dependencies{
		Elections: repo,
		Votes:     repo,
		Clock:     postgresadapter.SystemClock{},
		IDGen:     postgresadapter.UUIDGenerator{},
		Logger:    logger,
	})
	return module, pg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	if cfg.LogJSON {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.Default()
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if _, err := w.disassociator.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
