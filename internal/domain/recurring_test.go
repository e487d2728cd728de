package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFrequencyConstants(t *testing.T) {
	tests := []struct {
		name      string
		frequency Frequency
		expected  string
		supported bool
	}{
		{"monthly frequency", FrequencyMonthly, "monthly", true},
		{"weekly frequency", FrequencyWeekly, "weekly", false},
		{"yearly frequency", FrequencyYearly, "yearly", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.frequency) != tt.expected {
				t.Errorf("Frequency constant %s = %s, want %s", tt.name, tt.frequency, tt.expected)
			}
			if !tt.frequency.Valid() {
				t.Errorf("Expected %s to be valid", tt.frequency)
			}
			if tt.frequency.Supported() != tt.supported {
				t.Errorf("Supported() = %v, want %v", tt.frequency.Supported(), tt.supported)
			}
		})
	}

	if Frequency("daily").Valid() {
		t.Error("Expected daily to be invalid")
	}
}

func TestRecurringRuleInEffect(t *testing.T) {
	start := date(2024, 3, 10)
	end := date(2024, 5, 31)
	rule := RecurringRule{
		Kind:       EntryKindExpense,
		Amount:     decimal.NewFromInt(30),
		Frequency:  FrequencyMonthly,
		DayOfMonth: 10,
		StartDate:  start,
		EndDate:    &end,
	}

	tests := []struct {
		name   string
		period Period
		want   bool
	}{
		{"month before start", Period{2024, 2}, false},
		{"start month even though day is mid-month", Period{2024, 3}, true},
		{"between start and end", Period{2024, 4}, true},
		{"end month inclusive", Period{2024, 5}, true},
		{"month after end", Period{2024, 6}, false},
		{"previous year", Period{2023, 12}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.InEffect(tt.period); got != tt.want {
				t.Errorf("InEffect(%s) = %v, want %v", tt.period, got, tt.want)
			}
		})
	}
}

func TestRecurringRuleInEffect_OpenEnded(t *testing.T) {
	rule := RecurringRule{
		Frequency: FrequencyMonthly,
		StartDate: date(2024, 1, 1),
	}

	if !rule.InEffect(Period{2030, 7}) {
		t.Error("Expected open-ended rule to be in effect far in the future")
	}
	if rule.EndPeriod() != nil {
		t.Error("Expected nil end period for open-ended rule")
	}
}

func TestRecurringRuleInEffect_UnsupportedFrequency(t *testing.T) {
	for _, f := range []Frequency{FrequencyWeekly, FrequencyYearly} {
		rule := RecurringRule{Frequency: f, StartDate: date(2024, 1, 1)}
		if rule.InEffect(Period{2024, 6}) {
			t.Errorf("Expected %s rule to never be in effect", f)
		}
	}
}

func TestRecurringRuleMaterialize_ClampsToMonthEnd(t *testing.T) {
	rule := RecurringRule{
		Amount:     decimal.RequireFromString("1500.50"),
		Frequency:  FrequencyMonthly,
		DayOfMonth: 31,
		StartDate:  date(2024, 1, 15),
	}

	tests := []struct {
		period Period
		want   time.Time
	}{
		{Period{2024, 2}, date(2024, 2, 29)},
		{Period{2023, 2}, date(2023, 2, 28)},
		{Period{2024, 4}, date(2024, 4, 30)},
		{Period{2024, 1}, date(2024, 1, 31)},
	}

	for _, tt := range tests {
		got, amount := rule.Materialize(tt.period)
		if !got.Equal(tt.want) {
			t.Errorf("Materialize(%s) date = %s, want %s", tt.period, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
		if !amount.Equal(rule.Amount) {
			t.Errorf("Materialize(%s) amount = %s, want %s", tt.period, amount, rule.Amount)
		}
	}
}

func TestRecurringRuleInstance(t *testing.T) {
	desc := "rent"
	rule := RecurringRule{
		ID:          7,
		Kind:        EntryKindExpense,
		Name:        "Rent",
		Amount:      decimal.NewFromInt(1200),
		Category:    "Housing",
		Frequency:   FrequencyMonthly,
		DayOfMonth:  1,
		StartDate:   date(2024, 1, 1),
		Description: &desc,
	}

	inst := rule.Instance(Period{2024, 3})

	if inst.RuleID != 7 || inst.Name != "Rent" || inst.Category != "Housing" {
		t.Errorf("Unexpected instance fields: %+v", inst)
	}
	if !inst.IsRecurring {
		t.Error("Expected IsRecurring to be true")
	}
	if !inst.Date.Equal(date(2024, 3, 1)) {
		t.Errorf("Expected date 2024-03-01, got %s", inst.Date.Format("2006-01-02"))
	}
	if inst.Description == nil || *inst.Description != "rent" {
		t.Error("Expected description to be carried over")
	}
}
