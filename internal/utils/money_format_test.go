package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	assert.True(t, RoundMoney(63913.04347826087).Equal(decimal.RequireFromString("63913.04")))
	assert.True(t, RoundMoney(0.005).Equal(decimal.RequireFromString("0.01")))
	assert.True(t, RoundMoney(0).IsZero())
}

func TestRoundRateAndPercent(t *testing.T) {
	assert.True(t, RoundRate(434.7826086956522).Equal(decimal.RequireFromString("434.7826")))
	assert.True(t, RoundPercent(66.66666).Equal(decimal.RequireFromString("66.67")))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "75000", FormatMoney(75000))
	assert.Equal(t, "52200.5", FormatMoney(52200.5))
	assert.Equal(t, "12.35", FormatWithPrecision(decimal.RequireFromString("12.3456"), 2))
}
