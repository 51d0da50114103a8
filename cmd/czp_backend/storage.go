package main

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/HPG21/czp-releases/internal/core/ports/repositories"
	"github.com/HPG21/czp-releases/internal/platform/config"
	"github.com/HPG21/czp-releases/internal/repositories/cache"
	"github.com/HPG21/czp-releases/internal/repositories/database/pgsql"
	"github.com/HPG21/czp-releases/internal/repositories/database/sqlite"
	"github.com/HPG21/czp-releases/internal/repositories/memory"
	"github.com/HPG21/czp-releases/migrations"
	"github.com/HPG21/czp-releases/pkg/database"
)

// openRepositories connects the configured storage backend, applies pending
// migrations and returns its repositories with a cleanup func.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	var (
		repos   portsrepo.RepositoryProvider
		cleanup = func() {}
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return repos, cleanup, fmt.Errorf("initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")

		// Migrations go through database/sql on the pgx stdlib driver
		migrationDB, err := database.OpenPgxStdlib(ctx, cfg.DatabaseURL)
		if err != nil {
			database.ClosePgxPool(dbPool)
			return repos, cleanup, fmt.Errorf("open database for migrations: %w", err)
		}
		applied, err := migrations.RunPostgres(migrationDB)
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
		if err != nil {
			database.ClosePgxPool(dbPool)
			return repos, cleanup, err
		}
		logMigrations(logger, applied)

		repos = pgsql.NewRepositoryProvider(dbPool)
		cleanup = func() { database.ClosePgxPool(dbPool) }

	case config.StorageSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return repos, cleanup, err
		}
		applied, err := migrations.RunSQLite(db)
		if err != nil {
			db.Close()
			return repos, cleanup, err
		}
		logMigrations(logger, applied)

		repos = sqlite.NewRepositoryProvider(db)
		cleanup = func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing sqlite database", slog.String("error", err.Error()))
			}
		}

	default:
		logger.Warn("Using in-memory storage, data is lost on restart")
		repos = memory.NewRepositoryProvider()
	}

	if cfg.HistoryCacheTTL > 0 {
		repos.CalculationRepo = cache.NewCachedCalculationRepository(repos.CalculationRepo, cfg.HistoryCacheTTL)
		logger.Info("History cache enabled", slog.Duration("ttl", cfg.HistoryCacheTTL))
	}

	return repos, cleanup, nil
}

func logMigrations(logger *slog.Logger, applied bool) {
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}
}
