package core

import (
	"fmt"
	"time"
)

// MonthKeyLayout is the layout of month keys in count series (e.g. "2023-01").
const MonthKeyLayout = "2006-01"

// DateLayout renders calendar dates without a time of day.
const DateLayout = "2006-01-02"

// Month is a calendar month, independent of day and time of day.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month of t in t's own location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a "YYYY-MM" key
func ParseMonth(key string) (Month, error) {
	t, err := time.Parse(MonthKeyLayout, key)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return MonthOf(t), nil
}

// Key returns the "YYYY-MM" representation
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Start returns midnight UTC on the first day of the month
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Before reports whether m is chronologically before o
func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

func (m Month) String() string { return m.Key() }
