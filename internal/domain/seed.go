package domain

import (
	"fmt"
	"time"
)

// seedModulus bounds the daily seed to [0, seedModulus).
const seedModulus = 1000

// dayLayout is the wire format for a Day.
const dayLayout = "2006-01-02"

// Day is a calendar date without a time of day or location.
// It keys the daily pick and the loader task that resolves it.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar date of t in t's location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()

	return Day{Year: y, Month: m, Day: d}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, NewValidationErrorWithValue("day", "must be a date in YYYY-MM-DD format", s)
	}

	return DayOf(t), nil
}

// String returns the day in YYYY-MM-DD form.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	return d.Time().Before(other.Time())
}

// DaysSince returns the number of whole days from other to d.
func (d Day) DaysSince(other Day) int {
	return int(d.Time().Sub(other.Time()).Hours() / 24)
}

// Seed returns the daily seed for d.
func (d Day) Seed() int {
	seed := (d.Year*10000 + int(d.Month)*100 + d.Day) % seedModulus
	if seed < 0 {
		seed += seedModulus
	}

	return seed
}

// DailySeed derives a stable page index from the calendar date of t.
// Every instant of the same day yields the same value in [0, 1000).
func DailySeed(t time.Time) int {
	return DayOf(t).Seed()
}
