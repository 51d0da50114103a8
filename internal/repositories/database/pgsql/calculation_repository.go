package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HPG21/czp-releases/internal/apperrors"
	"github.com/HPG21/czp-releases/internal/core/domain"
	portsrepo "github.com/HPG21/czp-releases/internal/core/ports/repositories"
	"github.com/HPG21/czp-releases/internal/models"
	"github.com/HPG21/czp-releases/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const calculationColumns = `calculation_id, user_id, calc_month, quarterly_norm_hours, base_salary_amount,
		regular_hours, night_hours, holiday_hours, tax_rate_percent, hourly_rate, net_hourly_rate,
		regular_pay_net, night_pay_net, holiday_pay_net, total_pay_net, total_pay_gross, total_taxes_paid,
		created_at, last_updated_at`

const insertCalculationQuery = `
		INSERT INTO calculations (` + calculationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`

type PgxCalculationRepository struct {
	BaseRepository
}

// newPgxCalculationRepository creates a new repository for the salary history.
func newPgxCalculationRepository(pool *pgxpool.Pool) portsrepo.CalculationRepositoryFacade {
	return &PgxCalculationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CalculationRepositoryFacade = (*PgxCalculationRepository)(nil)

func scanCalculation(row pgx.Row) (models.Calculation, error) {
	var m models.Calculation
	err := row.Scan(
		&m.CalculationID,
		&m.UserID,
		&m.CalcMonth,
		&m.QuarterlyNormHours,
		&m.BaseSalaryAmount,
		&m.RegularHours,
		&m.NightHours,
		&m.HolidayHours,
		&m.TaxRatePercent,
		&m.HourlyRate,
		&m.NetHourlyRate,
		&m.RegularPayNet,
		&m.NightPayNet,
		&m.HolidayPayNet,
		&m.TotalPayNet,
		&m.TotalPayGross,
		&m.TotalTaxesPaid,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func insertArgs(m models.Calculation) []any {
	return []any{
		m.CalculationID,
		m.UserID,
		m.CalcMonth,
		m.QuarterlyNormHours,
		m.BaseSalaryAmount,
		m.RegularHours,
		m.NightHours,
		m.HolidayHours,
		m.TaxRatePercent,
		m.HourlyRate,
		m.NetHourlyRate,
		m.RegularPayNet,
		m.NightPayNet,
		m.HolidayPayNet,
		m.TotalPayNet,
		m.TotalPayGross,
		m.TotalTaxesPaid,
		m.CreatedAt,
		m.LastUpdatedAt,
	}
}

func (r *PgxCalculationRepository) findOne(ctx context.Context, query string, args ...any) (*domain.CalculationRecord, error) {
	m, err := scanCalculation(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	rec := mapping.ToDomainCalculation(m)
	return &rec, nil
}

func (r *PgxCalculationRepository) collect(ctx context.Context, query string, args ...any) ([]domain.CalculationRecord, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculations: %w", err)
	}
	defer rows.Close()

	modelCalcs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Calculation, error) {
		return scanCalculation(row)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.CalculationRecord{}, nil
		}
		return nil, fmt.Errorf("failed to scan calculations: %w", err)
	}
	return mapping.ToDomainCalculationSlice(modelCalcs), nil
}

// FindCalculationByID retrieves one record of the user.
func (r *PgxCalculationRepository) FindCalculationByID(ctx context.Context, userID, calculationID string) (*domain.CalculationRecord, error) {
	query := `SELECT ` + calculationColumns + ` FROM calculations WHERE calculation_id = $1 AND user_id = $2;`
	rec, err := r.findOne(ctx, query, calculationID, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find calculation %s: %w", calculationID, err)
	}
	return rec, err
}

// FindCalculationByMonth retrieves the record for a given month.
func (r *PgxCalculationRepository) FindCalculationByMonth(ctx context.Context, userID string, year int, month time.Month) (*domain.CalculationRecord, error) {
	query := `SELECT ` + calculationColumns + ` FROM calculations WHERE user_id = $1 AND calc_month = $2;`
	rec, err := r.findOne(ctx, query, userID, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find calculation for %04d-%02d: %w", year, month, err)
	}
	return rec, err
}

// ListCalculations retrieves the full history in insertion order.
func (r *PgxCalculationRepository) ListCalculations(ctx context.Context, userID string) ([]domain.CalculationRecord, error) {
	query := `SELECT ` + calculationColumns + ` FROM calculations WHERE user_id = $1 ORDER BY insert_seq;`
	return r.collect(ctx, query, userID)
}

// ListCalculationsPage retrieves up to limit records, newest month first.
func (r *PgxCalculationRepository) ListCalculationsPage(ctx context.Context, userID string, limit int, before *time.Time) ([]domain.CalculationRecord, error) {
	if before == nil {
		query := `SELECT ` + calculationColumns + ` FROM calculations WHERE user_id = $1 ORDER BY calc_month DESC LIMIT $2;`
		return r.collect(ctx, query, userID, limit)
	}
	query := `SELECT ` + calculationColumns + ` FROM calculations WHERE user_id = $1 AND calc_month < $2 ORDER BY calc_month DESC LIMIT $3;`
	return r.collect(ctx, query, userID, domain.MonthStart(*before), limit)
}

// SaveCalculation inserts a new record.
func (r *PgxCalculationRepository) SaveCalculation(ctx context.Context, rec domain.CalculationRecord) error {
	m := mapping.ToModelCalculation(rec)
	if _, err := r.Pool.Exec(ctx, insertCalculationQuery, insertArgs(m)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: a calculation for %s already exists", apperrors.ErrDuplicate, m.CalcMonth.Format("2006-01"))
		}
		return fmt.Errorf("failed to save calculation %s: %w", m.CalculationID, err)
	}
	return nil
}

// SaveCalculations inserts several records in one transaction.
func (r *PgxCalculationRepository) SaveCalculations(ctx context.Context, recs []domain.CalculationRecord) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	batch := &pgx.Batch{}
	for _, rec := range recs {
		batch.Queue(insertCalculationQuery, insertArgs(mapping.ToModelCalculation(rec))...)
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrDuplicate, err)
		}
		return fmt.Errorf("failed to save calculations: %w", err)
	}
	return r.Commit(ctx, tx)
}

// UpdateCalculation replaces the inputs and derived fields of an existing record.
func (r *PgxCalculationRepository) UpdateCalculation(ctx context.Context, rec domain.CalculationRecord) error {
	m := mapping.ToModelCalculation(rec)
	query := `
		UPDATE calculations SET
			quarterly_norm_hours = $3, base_salary_amount = $4, regular_hours = $5, night_hours = $6,
			holiday_hours = $7, tax_rate_percent = $8, hourly_rate = $9, net_hourly_rate = $10,
			regular_pay_net = $11, night_pay_net = $12, holiday_pay_net = $13, total_pay_net = $14,
			total_pay_gross = $15, total_taxes_paid = $16, last_updated_at = $17
		WHERE calculation_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CalculationID,
		m.UserID,
		m.QuarterlyNormHours,
		m.BaseSalaryAmount,
		m.RegularHours,
		m.NightHours,
		m.HolidayHours,
		m.TaxRatePercent,
		m.HourlyRate,
		m.NetHourlyRate,
		m.RegularPayNet,
		m.NightPayNet,
		m.HolidayPayNet,
		m.TotalPayNet,
		m.TotalPayGross,
		m.TotalTaxesPaid,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update calculation %s: %w", m.CalculationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCalculation removes one record.
func (r *PgxCalculationRepository) DeleteCalculation(ctx context.Context, userID, calculationID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM calculations WHERE calculation_id = $1 AND user_id = $2;`, calculationID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete calculation %s: %w", calculationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAllCalculations clears the user's history.
func (r *PgxCalculationRepository) DeleteAllCalculations(ctx context.Context, userID string) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM calculations WHERE user_id = $1;`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear calculations: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
