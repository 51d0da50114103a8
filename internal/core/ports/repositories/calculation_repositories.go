package repositories

import (
	"context"
	"time"

	"github.com/HPG21/czp-releases/internal/core/domain"
)

// CalculationReader defines read operations for a user's calculation history
type CalculationReader interface {
	// FindCalculationByID retrieves one record. Returns apperrors.ErrNotFound when the
	// record does not exist or belongs to another user.
	FindCalculationByID(ctx context.Context, userID, calculationID string) (*domain.CalculationRecord, error)

	// FindCalculationByMonth retrieves the record for a given month, or apperrors.ErrNotFound.
	FindCalculationByMonth(ctx context.Context, userID string, year int, month time.Month) (*domain.CalculationRecord, error)

	// ListCalculations retrieves the full history in insertion order.
	ListCalculations(ctx context.Context, userID string) ([]domain.CalculationRecord, error)

	// ListCalculationsPage retrieves up to limit records, newest month first, strictly
	// older than before when before is set.
	ListCalculationsPage(ctx context.Context, userID string, limit int, before *time.Time) ([]domain.CalculationRecord, error)
}

// CalculationWriter defines write operations for a user's calculation history
type CalculationWriter interface {
	// SaveCalculation inserts a new record. Returns apperrors.ErrDuplicate when the
	// user already has a record for that month.
	SaveCalculation(ctx context.Context, rec domain.CalculationRecord) error

	// SaveCalculations inserts several records atomically.
	SaveCalculations(ctx context.Context, recs []domain.CalculationRecord) error

	// UpdateCalculation replaces the inputs and derived fields of an existing record.
	UpdateCalculation(ctx context.Context, rec domain.CalculationRecord) error

	// DeleteCalculation removes one record.
	DeleteCalculation(ctx context.Context, userID, calculationID string) error

	// DeleteAllCalculations clears the user's history and reports how many records went away.
	DeleteAllCalculations(ctx context.Context, userID string) (int64, error)
}

// CalculationRepositoryFacade combines all calculation-related repository interfaces
type CalculationRepositoryFacade interface {
	CalculationReader
	CalculationWriter
}
