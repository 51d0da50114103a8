package utils

import (
	"github.com/shopspring/decimal"
)

// Display precisions. Stored values keep full float64 precision.
const (
	MoneyPrecision   = 2
	RatePrecision    = 4
	PercentPrecision = 2
)

// RoundMoney converts a float amount to a decimal rounded to kopecks.
// Example: 63913.04347826087 returns 63913.04
func RoundMoney(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(MoneyPrecision)
}

// RoundRate converts an hourly rate to a decimal with four fractional digits.
func RoundRate(rate float64) decimal.Decimal {
	return decimal.NewFromFloat(rate).Round(RatePrecision)
}

// RoundPercent converts a percentage to a decimal with two fractional digits.
func RoundPercent(percent float64) decimal.Decimal {
	return decimal.NewFromFloat(percent).Round(PercentPrecision)
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function when you only have the precision value
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}

// FormatMoney renders a float amount the way it is shown to the user, e.g. "63913.04".
func FormatMoney(amount float64) string {
	return FormatWithPrecision(decimal.NewFromFloat(amount), MoneyPrecision)
}
