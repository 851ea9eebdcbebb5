package holiday

import (
	"fmt"
	"time"
)

// KeyLayout is the layout of date keys used throughout the holiday tables.
const KeyLayout = "2006-01-02"

// Date is a Gregorian calendar date without a time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for year, month and day. Out-of-range values are
// normalized the way time.Date normalizes them, so NewDate(2024, 3, 0) is
// 2024-02-29.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseKey parses a YYYY-MM-DD key.
func ParseKey(key string) (Date, error) {
	t, err := time.Parse(KeyLayout, key)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", key, err)
	}
	return DateOf(t), nil
}

// Time returns noon UTC of d. Noon keeps the date stable when callers convert
// to other zones.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week, Sunday being 0.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n days after d (before, for negative n).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// Before reports whether d comes before other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Key formats d as YYYY-MM-DD with a zero-padded four digit year.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) String() string {
	return d.Key()
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// MarshalText encodes d as its key, so dates serialize as "2026-01-01".
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.Key()), nil
}

// UnmarshalText decodes a YYYY-MM-DD key.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
