package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/HPG21/czp-releases/internal/apperrors"
	"github.com/HPG21/czp-releases/internal/core/domain"
	"github.com/HPG21/czp-releases/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, month time.Month) domain.CalculationRecord {
	return domain.CalculationRecord{
		ID:                 id,
		UserID:             "user-1",
		Date:               time.Date(2025, month, 15, 0, 0, 0, 0, time.UTC),
		QuarterlyNormHours: 480,
		BaseSalaryAmount:   100000,
		RegularHours:       160,
		TaxRatePercent:     13,
		TotalPayNet:        87000,
	}
}

func TestStore_SaveNormalizesAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.SaveCalculation(ctx, record("c1", time.March)))

	got, err := s.FindCalculationByMonth(ctx, "user-1", 2025, time.March)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), got.Date)

	err = s.SaveCalculation(ctx, record("c2", time.March))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	// another user may use the same month
	other := record("c3", time.March)
	other.UserID = "user-2"
	assert.NoError(t, s.SaveCalculation(ctx, other))
}

func TestStore_SaveCalculationsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	err := s.SaveCalculations(ctx, []domain.CalculationRecord{
		record("c1", time.January),
		record("c2", time.January),
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	all, err := s.ListCalculations(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveCalculation(ctx, record("c1", time.March)))

	all, err := s.ListCalculations(ctx, "user-1")
	require.NoError(t, err)
	all[0].TotalPayNet = 1

	again, err := s.ListCalculations(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 87000.0, again[0].TotalPayNet)
}

func TestStore_ListCalculationsPage(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveCalculations(ctx, []domain.CalculationRecord{
		record("c-feb", time.February),
		record("c-may", time.May),
		record("c-jan", time.January),
	}))

	page, err := s.ListCalculationsPage(ctx, "user-1", 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "c-may", page[0].ID)
	assert.Equal(t, "c-feb", page[1].ID)

	before := page[1].Date
	page, err = s.ListCalculationsPage(ctx, "user-1", 2, &before)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c-jan", page[0].ID)
}

func TestStore_UpdateKeepsMonthAndCreation(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	rec := record("c1", time.March)
	rec.CreatedAt = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveCalculation(ctx, rec))

	rec.Date = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec.CreatedAt = time.Time{}
	rec.RegularHours = 150
	require.NoError(t, s.UpdateCalculation(ctx, rec))

	got, err := s.FindCalculationByID(ctx, "user-1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 150.0, got.RegularHours)
	assert.Equal(t, time.March, got.Date.Month())
	assert.Equal(t, 2025, got.Date.Year())
	assert.Equal(t, 2025, got.CreatedAt.Year())

	missing := record("nope", time.April)
	assert.ErrorIs(t, s.UpdateCalculation(ctx, missing), apperrors.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveCalculations(ctx, []domain.CalculationRecord{
		record("c1", time.January),
		record("c2", time.February),
		record("c3", time.March),
	}))

	require.NoError(t, s.DeleteCalculation(ctx, "user-1", "c2"))
	assert.ErrorIs(t, s.DeleteCalculation(ctx, "user-1", "c2"), apperrors.ErrNotFound)

	all, err := s.ListCalculations(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c1", all[0].ID)
	assert.Equal(t, "c3", all[1].ID)

	deleted, err := s.DeleteAllCalculations(ctx, "user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
}

func TestStore_Settings(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	_, err := s.FindSettings(ctx, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	amount := 80000.0
	settings := domain.DefaultSettings("user-1")
	settings.BaseSalaryAmount = &amount
	require.NoError(t, s.SaveSettings(ctx, settings))

	amount = 1
	got, err := s.FindSettings(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got.BaseSalaryAmount)
	assert.Equal(t, 80000.0, *got.BaseSalaryAmount)
}

func TestStore_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	var wg sync.WaitGroup
	for m := time.January; m <= time.December; m++ {
		wg.Add(1)
		go func(month time.Month) {
			defer wg.Done()
			_ = s.SaveCalculation(ctx, record(month.String(), month))
		}(m)
	}
	wg.Wait()

	all, err := s.ListCalculations(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, all, 12)
}
