package domain

import "github.com/shopspring/decimal"

// Money columns are NUMERIC(14,2): at most two fraction digits and twelve integer digits.
const AmountScale = 2

// MaxAmount is the smallest magnitude that no longer fits a money column
var MaxAmount = decimal.New(1, 12)

// ValidateMoney rejects amounts storage would round or overflow
func ValidateMoney(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return ErrInvalidAmountPrecision
	}
	if amount.Abs().GreaterThanOrEqual(MaxAmount) {
		return ErrAmountOutOfRange
	}
	return nil
}

// ValidatePositiveAmount is ValidateMoney for amounts that must be greater than zero
func ValidatePositiveAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return ValidateMoney(amount)
}
