package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidatePositiveAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want error
	}{
		{"0.01", nil},
		{"10.500", nil},
		{"999999999999.99", nil},
		{"0", ErrInvalidAmount},
		{"-5", ErrInvalidAmount},
		{"0.001", ErrInvalidAmountPrecision},
		{"12.345", ErrInvalidAmountPrecision},
		{"1000000000000", ErrAmountOutOfRange},
	}

	for _, tt := range tests {
		err := ValidatePositiveAmount(decimal.RequireFromString(tt.raw))
		if !errors.Is(err, tt.want) || (tt.want == nil && err != nil) {
			t.Errorf("ValidatePositiveAmount(%s) = %v, want %v", tt.raw, err, tt.want)
		}
		if tt.want != nil && !errors.Is(err, ErrValidation) {
			t.Errorf("ValidatePositiveAmount(%s) should be a validation error", tt.raw)
		}
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		target, current     string
		remaining, progress string
	}{
		{"1000", "0", "1000.00", "0.00"},
		{"3000", "1000", "2000.00", "33.33"},
		{"500", "750", "0.00", "100.00"},
	}

	for _, tt := range tests {
		g := &Goal{
			TargetAmount:  decimal.RequireFromString(tt.target),
			CurrentAmount: decimal.RequireFromString(tt.current),
		}
		if got := g.Remaining().StringFixed(2); got != tt.remaining {
			t.Errorf("Remaining(%s/%s) = %s, want %s", tt.current, tt.target, got, tt.remaining)
		}
		if got := g.Progress().StringFixed(2); got != tt.progress {
			t.Errorf("Progress(%s/%s) = %s, want %s", tt.current, tt.target, got, tt.progress)
		}
	}
}
