package domain

import (
	"fmt"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/util"
)

// Period is a single (year, month) accounting window
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// NewPeriod builds a validated period
func NewPeriod(year, month int) (Period, error) {
	p := Period{Year: year, Month: month}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// PeriodOf returns the period containing t
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Validate rejects months outside 1..12 and unreasonable years
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}
	if p.Year < MinYear || p.Year > MaxYear {
		return ErrInvalidYear
	}
	return nil
}

// Bounds returns the first and last calendar day of the period, both inclusive
func (p Period) Bounds() (time.Time, time.Time) {
	return util.MonthBoundaries(p.Year, p.Month)
}

// DaysIn returns the number of days in the period
func (p Period) DaysIn() int {
	return util.DaysInMonth(p.Year, time.Month(p.Month))
}

func (p Period) Previous() Period {
	y, m := util.PreviousMonth(p.Year, p.Month)
	return Period{Year: y, Month: m}
}

func (p Period) Next() Period {
	y, m := util.NextMonth(p.Year, p.Month)
	return Period{Year: y, Month: m}
}

// Before reports whether p is strictly earlier than o
func (p Period) Before(o Period) bool {
	return util.CompareMonths(p.Year, p.Month, o.Year, o.Month) < 0
}

// After reports whether p is strictly later than o
func (p Period) After(o Period) bool {
	return util.CompareMonths(p.Year, p.Month, o.Year, o.Month) > 0
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
