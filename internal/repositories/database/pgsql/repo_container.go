package pgsql

import (
	portsrepo "github.com/HPG21/czp-releases/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CalculationRepo: newPgxCalculationRepository(dbPool),
		SettingsRepo:    newPgxSettingsRepository(dbPool),
	}
}
