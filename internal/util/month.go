package util

import "time"

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// NextMonth returns the year and month for the following month
func NextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// MonthBoundaries returns the first and last calendar day of a month (UTC midnight)
func MonthBoundaries(year, month int) (time.Time, time.Time) {
	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, -1)
	return startDate, endDate
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CompareMonths orders two (year, month) pairs lexicographically.
// Returns -1 if a is before b, 1 if after, 0 if equal.
func CompareMonths(aYear, aMonth, bYear, bMonth int) int {
	switch {
	case aYear < bYear:
		return -1
	case aYear > bYear:
		return 1
	case aMonth < bMonth:
		return -1
	case aMonth > bMonth:
		return 1
	}
	return 0
}

// CalculateActualDate returns the actual date for a target day in a given month,
// handling months with fewer days (e.g., day 31 in February returns Feb 28/29)
func CalculateActualDate(year int, month time.Month, targetDay int) time.Time {
	lastDay := DaysInMonth(year, month)

	actualDay := targetDay
	if actualDay > lastDay {
		actualDay = lastDay
	}

	return time.Date(year, month, actualDay, 0, 0, 0, 0, time.UTC)
}

// DateOnly truncates a time to UTC midnight of its calendar day
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
