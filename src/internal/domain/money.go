package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a money operation amount. It must be numeric, greater than
// zero and carry at most two fraction digits.
func ParseAmount(raw string) (decimal.Decimal, error) {
	value, err := parseMoney(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if !value.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
	}
	return value, nil
}

// ParseOpeningBalance parses an initial balance, which may be zero.
func ParseOpeningBalance(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero.Round(BalanceScale), nil
	}
	value, err := parseMoney(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if value.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: initialBalance cannot be negative", ErrInvalidAmount)
	}
	return value, nil
}

// MaxMoney is the largest value a NUMERIC(18,2) money column holds.
var MaxMoney = decimal.RequireFromString("9999999999999999.99")

// ValidateBalance rejects values that do not fit a money column.
func ValidateBalance(value decimal.Decimal) error {
	if value.Abs().GreaterThan(MaxMoney) {
		return fmt.Errorf("%w: value exceeds %s", ErrInvalidAmount, MaxMoney.StringFixed(BalanceScale))
	}
	return nil
}

func FormatMoney(value decimal.Decimal) string {
	return value.StringFixed(BalanceScale)
}

func parseMoney(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount must be numeric", ErrInvalidAmount)
	}
	if !value.Equal(value.Round(BalanceScale)) {
		return decimal.Zero, fmt.Errorf("%w: amount must have at most %d decimal places", ErrInvalidAmount, BalanceScale)
	}
	if err := ValidateBalance(value); err != nil {
		return decimal.Zero, err
	}
	return value.Round(BalanceScale), nil
}
