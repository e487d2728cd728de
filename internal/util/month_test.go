package util

import (
	"testing"
	"time"
)

func TestPreviousMonth_SameYear(t *testing.T) {
	tests := []struct {
		year      int
		month     int
		wantYear  int
		wantMonth int
	}{
		{2026, 6, 2026, 5},   // June -> May
		{2026, 12, 2026, 11}, // Dec -> Nov
		{2026, 2, 2026, 1},   // Feb -> Jan
	}

	for _, tt := range tests {
		gotYear, gotMonth := PreviousMonth(tt.year, tt.month)
		if gotYear != tt.wantYear || gotMonth != tt.wantMonth {
			t.Errorf("PreviousMonth(%d, %d) = (%d, %d), want (%d, %d)",
				tt.year, tt.month, gotYear, gotMonth, tt.wantYear, tt.wantMonth)
		}
	}
}

func TestPreviousMonth_YearBoundary(t *testing.T) {
	// January -> December of previous year
	gotYear, gotMonth := PreviousMonth(2026, 1)
	if gotYear != 2025 || gotMonth != 12 {
		t.Errorf("PreviousMonth(2026, 1) = (%d, %d), want (2025, 12)", gotYear, gotMonth)
	}
}

func TestNextMonth(t *testing.T) {
	tests := []struct {
		year      int
		month     int
		wantYear  int
		wantMonth int
	}{
		{2026, 6, 2026, 7},
		{2026, 11, 2026, 12},
		{2026, 12, 2027, 1}, // Dec -> Jan next year
	}

	for _, tt := range tests {
		gotYear, gotMonth := NextMonth(tt.year, tt.month)
		if gotYear != tt.wantYear || gotMonth != tt.wantMonth {
			t.Errorf("NextMonth(%d, %d) = (%d, %d), want (%d, %d)",
				tt.year, tt.month, gotYear, gotMonth, tt.wantYear, tt.wantMonth)
		}
	}
}

func TestMonthBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     int
		wantStart string
		wantEnd   string
	}{
		{"leap february", 2024, 2, "2024-02-01", "2024-02-29"},
		{"non-leap february", 2025, 2, "2025-02-01", "2025-02-28"},
		{"december", 2024, 12, "2024-12-01", "2024-12-31"},
		{"april", 2024, 4, "2024-04-01", "2024-04-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthBoundaries(tt.year, tt.month)
			if got := start.Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format("2006-01-02"); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
		})
	}
}

func TestCalculateActualDate_ClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		targetDay int
		want      string
	}{
		{"day 31 in leap february", 2024, time.February, 31, "2024-02-29"},
		{"day 30 in february", 2025, time.February, 30, "2025-02-28"},
		{"day 31 in april", 2024, time.April, 31, "2024-04-30"},
		{"day 15 unchanged", 2024, time.March, 15, "2024-03-15"},
		{"day 31 in january", 2024, time.January, 31, "2024-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateActualDate(tt.year, tt.month, tt.targetDay).Format("2006-01-02")
			if got != tt.want {
				t.Errorf("CalculateActualDate(%d, %s, %d) = %s, want %s",
					tt.year, tt.month, tt.targetDay, got, tt.want)
			}
		})
	}
}

func TestCompareMonths(t *testing.T) {
	if CompareMonths(2023, 12, 2024, 1) != -1 {
		t.Error("2023-12 should be before 2024-01")
	}
	if CompareMonths(2024, 3, 2024, 2) != 1 {
		t.Error("2024-03 should be after 2024-02")
	}
	if CompareMonths(2024, 5, 2024, 5) != 0 {
		t.Error("2024-05 should equal 2024-05")
	}
}
