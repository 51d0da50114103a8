package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/HPG21/czp-releases/internal/apperrors"
	"github.com/HPG21/czp-releases/internal/core/domain"
	portsrepo "github.com/HPG21/czp-releases/internal/core/ports/repositories"
	"github.com/HPG21/czp-releases/internal/models"
	"github.com/HPG21/czp-releases/internal/utils/mapping"
)

const calculationColumns = `calculation_id, user_id, calc_month, quarterly_norm_hours, base_salary_amount,
		regular_hours, night_hours, holiday_hours, tax_rate_percent, hourly_rate, net_hourly_rate,
		regular_pay_net, night_pay_net, holiday_pay_net, total_pay_net, total_pay_gross, total_taxes_paid,
		created_at, last_updated_at`

const insertCalculationQuery = `
		INSERT INTO calculations (` + calculationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

type SQLiteCalculationRepository struct {
	BaseRepository
}

// newSQLiteCalculationRepository creates a new repository for the salary history.
func newSQLiteCalculationRepository(db *sql.DB) portsrepo.CalculationRepositoryFacade {
	return &SQLiteCalculationRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CalculationRepositoryFacade = (*SQLiteCalculationRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row rowScanner) (models.Calculation, error) {
	var (
		m                       models.Calculation
		month, created, updated string
	)
	err := row.Scan(
		&m.CalculationID,
		&m.UserID,
		&month,
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
		&created,
		&updated,
	)
	if err != nil {
		return m, err
	}
	if m.CalcMonth, err = parseMonth(month); err != nil {
		return m, err
	}
	if m.CreatedAt, err = parseTimestamp(created); err != nil {
		return m, err
	}
	if m.LastUpdatedAt, err = parseTimestamp(updated); err != nil {
		return m, err
	}
	return m, nil
}

func insertArgs(m models.Calculation) []any {
	return []any{
		m.CalculationID,
		m.UserID,
		formatMonth(m.CalcMonth),
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
		formatTimestamp(m.CreatedAt),
		formatTimestamp(m.LastUpdatedAt),
	}
}

func (r *SQLiteCalculationRepository) findOne(ctx context.Context, query string, args ...any) (*domain.CalculationRecord, error) {
	m, err := scanCalculation(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	rec := mapping.ToDomainCalculation(m)
	return &rec, nil
}

func (r *SQLiteCalculationRepository) collect(ctx context.Context, query string, args ...any) ([]domain.CalculationRecord, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculations: %w", err)
	}
	defer rows.Close()

	modelCalcs := []models.Calculation{}
	for rows.Next() {
		m, err := scanCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calculations: %w", err)
		}
		modelCalcs = append(modelCalcs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calculations: %w", err)
	}
	return mapping.ToDomainCalculationSlice(modelCalcs), nil
}

// FindCalculationByID retrieves one record of the user.
func (r *SQLiteCalculationRepository) FindCalculationByID(ctx context.Context, userID, calculationID string) (*domain.CalculationRecord, error) {
	query := `SELECT ` + calculationColumns + ` FROM calculations WHERE calculation_id = ? AND user_id = ?;`
	rec, err := r.findOne(ctx, query, calculationID, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find calculation %s: %w", calculationID, err)
	}
	return rec, err
}

// FindCalculationByMonth retrieves the record for a given month.
func (r *SQLiteCalculationRepository) FindCalculationByMonth(ctx context.Context, userID string, year int, month time.Month) (*domain.CalculationRecord, error) {
	query := `SELECT ` + calculationColumns + ` FROM calculations WHERE user_id = ? AND calc_month = ?;`
	rec, err := r.findOne(ctx, query, userID, formatMonth(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find calculation for %04d-%02d: %w", year, month, err)
	}
	return rec, err
}

// ListCalculations retrieves the full history in insertion order.
func (r *SQLiteCalculationRepository) ListCalculations(ctx context.Context, userID string) ([]domain.CalculationRecord, error) {
	query := `SELECT ` + calculationColumns + ` FROM calculations WHERE user_id = ? ORDER BY insert_seq;`
	return r.collect(ctx, query, userID)
}

// ListCalculationsPage retrieves up to limit records, newest month first.
func (r *SQLiteCalculationRepository) ListCalculationsPage(ctx context.Context, userID string, limit int, before *time.Time) ([]domain.CalculationRecord, error) {
	if before == nil {
		query := `SELECT ` + calculationColumns + ` FROM calculations WHERE user_id = ? ORDER BY calc_month DESC LIMIT ?;`
		return r.collect(ctx, query, userID, limit)
	}
	query := `SELECT ` + calculationColumns + ` FROM calculations WHERE user_id = ? AND calc_month < ? ORDER BY calc_month DESC LIMIT ?;`
	return r.collect(ctx, query, userID, formatMonth(domain.MonthStart(*before)), limit)
}

// SaveCalculation inserts a new record.
func (r *SQLiteCalculationRepository) SaveCalculation(ctx context.Context, rec domain.CalculationRecord) error {
	m := mapping.ToModelCalculation(rec)
	if _, err := r.DB.ExecContext(ctx, insertCalculationQuery, insertArgs(m)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: a calculation for %s already exists", apperrors.ErrDuplicate, m.CalcMonth.Format("2006-01"))
		}
		return fmt.Errorf("failed to save calculation %s: %w", m.CalculationID, err)
	}
	return nil
}

// SaveCalculations inserts several records in one transaction.
func (r *SQLiteCalculationRepository) SaveCalculations(ctx context.Context, recs []domain.CalculationRecord) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(tx)
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertCalculationQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		m := mapping.ToModelCalculation(rec)
		if _, err = stmt.ExecContext(ctx, insertArgs(m)...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: a calculation for %s already exists", apperrors.ErrDuplicate, m.CalcMonth.Format("2006-01"))
			}
			return fmt.Errorf("failed to save calculation %s: %w", m.CalculationID, err)
		}
	}
	return r.Commit(tx)
}

// UpdateCalculation replaces the inputs and derived fields of an existing record.
func (r *SQLiteCalculationRepository) UpdateCalculation(ctx context.Context, rec domain.CalculationRecord) error {
	m := mapping.ToModelCalculation(rec)
	query := `
		UPDATE calculations SET
			quarterly_norm_hours = ?, base_salary_amount = ?, regular_hours = ?, night_hours = ?,
			holiday_hours = ?, tax_rate_percent = ?, hourly_rate = ?, net_hourly_rate = ?,
			regular_pay_net = ?, night_pay_net = ?, holiday_pay_net = ?, total_pay_net = ?,
			total_pay_gross = ?, total_taxes_paid = ?, last_updated_at = ?
		WHERE calculation_id = ? AND user_id = ?;
	`
	res, err := r.DB.ExecContext(ctx, query,
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
		formatTimestamp(m.LastUpdatedAt),
		m.CalculationID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update calculation %s: %w", m.CalculationID, err)
	}
	return requireAffected(res)
}

// DeleteCalculation removes one record.
func (r *SQLiteCalculationRepository) DeleteCalculation(ctx context.Context, userID, calculationID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM calculations WHERE calculation_id = ? AND user_id = ?;`, calculationID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete calculation %s: %w", calculationID, err)
	}
	return requireAffected(res)
}

// DeleteAllCalculations clears the user's history.
func (r *SQLiteCalculationRepository) DeleteAllCalculations(ctx context.Context, userID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM calculations WHERE user_id = ?;`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear calculations: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted calculations: %w", err)
	}
	return deleted, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
