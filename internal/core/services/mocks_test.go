package services_test

import (
	"context"
	"time"

	"github.com/HPG21/czp-releases/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock CalculationRepository ---
type MockCalculationRepository struct {
	mock.Mock
}

func (m *MockCalculationRepository) FindCalculationByID(ctx context.Context, userID, calculationID string) (*domain.CalculationRecord, error) {
	args := m.Called(ctx, userID, calculationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculationRecord), args.Error(1)
}

func (m *MockCalculationRepository) FindCalculationByMonth(ctx context.Context, userID string, year int, month time.Month) (*domain.CalculationRecord, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculationRecord), args.Error(1)
}

func (m *MockCalculationRepository) ListCalculations(ctx context.Context, userID string) ([]domain.CalculationRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CalculationRecord), args.Error(1)
}

func (m *MockCalculationRepository) ListCalculationsPage(ctx context.Context, userID string, limit int, before *time.Time) ([]domain.CalculationRecord, error) {
	args := m.Called(ctx, userID, limit, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CalculationRecord), args.Error(1)
}

func (m *MockCalculationRepository) SaveCalculation(ctx context.Context, rec domain.CalculationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockCalculationRepository) SaveCalculations(ctx context.Context, recs []domain.CalculationRecord) error {
	args := m.Called(ctx, recs)
	return args.Error(0)
}

func (m *MockCalculationRepository) UpdateCalculation(ctx context.Context, rec domain.CalculationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockCalculationRepository) DeleteCalculation(ctx context.Context, userID, calculationID string) error {
	args := m.Called(ctx, userID, calculationID)
	return args.Error(0)
}

func (m *MockCalculationRepository) DeleteAllCalculations(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

var fixedNow = time.Date(2025, 10, 18, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func f64(v float64) *float64 { return &v }

func monthOf(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func record(id string, date time.Time, base float64) domain.CalculationRecord {
	return domain.CalculationRecord{
		ID:                 id,
		UserID:             "user-1",
		Date:               date,
		QuarterlyNormHours: 480,
		BaseSalaryAmount:   base,
		RegularHours:       160,
		TaxRatePercent:     13,
		TotalPayNet:        base * 0.87,
	}
}
