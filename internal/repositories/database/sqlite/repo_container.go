package sqlite

import (
	"database/sql"

	portsrepo "github.com/HPG21/czp-releases/internal/core/ports/repositories"
)

func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CalculationRepo: newSQLiteCalculationRepository(db),
		SettingsRepo:    newSQLiteSettingsRepository(db),
	}
}
