package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSumAmounts_EmptyIsExactZero(t *testing.T) {
	sum := SumAmounts(nil)
	if !sum.Equal(decimal.Zero) {
		t.Errorf("SumAmounts(nil) = %s, want 0", sum)
	}
	if sum.StringFixed(2) != "0.00" {
		t.Errorf("StringFixed(2) = %s", sum.StringFixed(2))
	}
}

func TestSumAmounts_Exact(t *testing.T) {
	entries := []*LedgerEntry{
		{Amount: decimal.RequireFromString("0.10")},
		{Amount: decimal.RequireFromString("0.20")},
	}
	if got := SumAmounts(entries); !got.Equal(decimal.RequireFromString("0.30")) {
		t.Errorf("SumAmounts = %s, want 0.30", got)
	}
}

func TestEntryKindValid(t *testing.T) {
	tests := []struct {
		kind EntryKind
		want bool
	}{
		{EntryKindIncome, true},
		{EntryKindExpense, true},
		{EntryKind("transfer"), false},
		{EntryKind(""), false},
	}
	for _, tt := range tests {
		if got := tt.kind.Valid(); got != tt.want {
			t.Errorf("EntryKind(%q).Valid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
