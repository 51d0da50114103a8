package dto

import (
	"testing"
	"time"

	"github.com/HPG21/czp-releases/internal/apperrors"
	"github.com/HPG21/czp-releases/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidations(v))
	return v
}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }
func boolPtr(v bool) *bool   { return &v }

func TestCreateCalculationRequest_Validation(t *testing.T) {
	v := newValidator(t)
	valid := CreateCalculationRequest{
		Year:  2025,
		Month: 3,
		CalculationInputsRequest: CalculationInputsRequest{
			QuarterlyNormHours: 480,
			BaseSalaryAmount:   f64(100000),
			RegularHours:       160,
			NightHours:         20,
			TaxRatePercent:     f64(15),
		},
	}
	assert.NoError(t, v.Struct(valid))

	noTax := valid
	noTax.TaxRatePercent = nil
	assert.NoError(t, v.Struct(noTax), "tax rate is optional")

	badTax := valid
	badTax.TaxRatePercent = f64(20)
	assert.Error(t, v.Struct(badTax))

	badMonth := valid
	badMonth.Month = 13
	assert.Error(t, v.Struct(badMonth))

	noNorm := valid
	noNorm.QuarterlyNormHours = 0
	assert.Error(t, v.Struct(noNorm))

	negative := valid
	negative.NightHours = -1
	assert.Error(t, v.Struct(negative))
}

func TestImportHistoryRequest_Validation(t *testing.T) {
	v := newValidator(t)
	row := CalculationTransfer{Date: "2025-03-01", QuarterlyNormHours: 480, BaseSalaryAmount: 1, TaxRatePercent: 13}
	assert.NoError(t, v.Struct(ImportHistoryRequest{Calculations: []CalculationTransfer{row}}))

	badDate := row
	badDate.Date = "03/2025"
	assert.Error(t, v.Struct(ImportHistoryRequest{Calculations: []CalculationTransfer{badDate}}))

	badTax := row
	badTax.TaxRatePercent = 0
	assert.Error(t, v.Struct(ImportHistoryRequest{Calculations: []CalculationTransfer{badTax}}))
}

func TestUpdateCalculationRequest_Apply(t *testing.T) {
	current := domain.Inputs{QuarterlyNormHours: 480, BaseSalaryAmount: 100000, RegularHours: 160, NightHours: 20, HolidayHours: 8, TaxRatePercent: 13}

	assert.Equal(t, current, UpdateCalculationRequest{}.Apply(current))

	got := UpdateCalculationRequest{NightHours: f64(0), TaxRatePercent: f64(15)}.Apply(current)
	want := current
	want.NightHours = 0
	want.TaxRatePercent = 15
	assert.Equal(t, want, got)
}

func TestUpdateSettingsRequest_Apply(t *testing.T) {
	current := domain.DefaultSettings("u1")

	got := UpdateSettingsRequest{
		TaxRatePercent:    f64(15),
		BaseSalaryAmount:  f64(90000),
		BaseSalaryEnabled: boolPtr(true),
		ThemeMode:         str("DARK"),
		Cards:             &AnalyticsCardsRequest{TopMonths: boolPtr(false)},
	}.Apply(current)

	assert.Equal(t, 15.0, got.TaxRatePercent)
	require.NotNil(t, got.BaseSalaryAmount)
	assert.Equal(t, 90000.0, *got.BaseSalaryAmount)
	assert.True(t, got.BaseSalaryEnabled)
	assert.True(t, got.ShowQuarters)
	assert.Equal(t, domain.ThemeDark, got.ThemeMode)
	assert.False(t, got.Cards.TopMonths)
	assert.True(t, got.Cards.KeyMetrics)
	assert.True(t, current.Cards.TopMonths, "input must not be modified")

	cleared := UpdateSettingsRequest{ClearBaseSalary: true}.Apply(got)
	assert.Nil(t, cleared.BaseSalaryAmount)
}

func TestAnalyticsQuery_ToFilterOptions(t *testing.T) {
	opts, err := AnalyticsQuery{}.ToFilterOptions()
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodAllTime, opts.Period)
	assert.Nil(t, opts.From)

	year := 2024
	opts, err = AnalyticsQuery{Period: "LAST_YEAR", Year: &year, FromDate: str("2024-01-01"), ToDate: str("2024-06-30")}.ToFilterOptions()
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodLastYear, opts.Period)
	assert.Equal(t, 2024, *opts.Year)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *opts.From)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), *opts.To)

	_, err = AnalyticsQuery{Period: "FOREVER"}.ToFilterOptions()
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = AnalyticsQuery{FromDate: str("2024-06-01"), ToDate: str("2024-01-01")}.ToFilterOptions()
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestToAnalyticsResponse_Rounds(t *testing.T) {
	stability := 87.654321
	report := domain.AnalyticsReport{
		KeyMetrics:       &domain.KeyMetrics{Average: 63913.04347826087, Max: 70000, Min: 50000.005, Total: 127826.08695652174, Count: 2},
		HourlyEfficiency: &domain.HourlyEfficiency{AverageNetHourlyRate: 378.2608695652174, Stability: &stability},
		TopMonths:        &domain.TopMonths{},
	}

	resp := ToAnalyticsResponse(report)

	require.NotNil(t, resp.KeyMetrics)
	assert.True(t, resp.KeyMetrics.Average.Equal(decimal.RequireFromString("63913.04")))
	assert.True(t, resp.KeyMetrics.Total.Equal(decimal.RequireFromString("127826.09")))
	require.NotNil(t, resp.HourlyEfficiency)
	assert.True(t, resp.HourlyEfficiency.AverageNetHourlyRate.Equal(decimal.RequireFromString("378.2609")))
	require.NotNil(t, resp.HourlyEfficiency.Stability)
	assert.True(t, resp.HourlyEfficiency.Stability.Equal(decimal.RequireFromString("87.65")))
	require.NotNil(t, resp.TopMonths)
	assert.Nil(t, resp.TopMonths.Best)
	assert.Nil(t, resp.Trend)
	assert.Nil(t, resp.Taxes)
	assert.NotNil(t, resp.AvailableYears)
}

func TestToCalculationResponse(t *testing.T) {
	rec := domain.CalculationRecord{
		ID:            "c1",
		Date:          time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		HourlyRate:    625,
		NetHourlyRate: 543.75,
		TotalPayNet:   95700.00000000001,
	}
	resp := ToCalculationResponse(&rec)
	assert.Equal(t, "c1", resp.CalculationID)
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, 8, resp.Month)
	assert.Equal(t, 3, resp.Quarter)
	assert.True(t, resp.TotalPayNet.Equal(decimal.NewFromInt(95700)))

	transfer := ToCalculationTransfer(&rec)
	assert.Equal(t, "2025-08-01", transfer.Date)
}
