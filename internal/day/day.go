// Package day owns the calendar-day identifier that partitions every per-day
// record. All call sites derive day ids through this package so the same
// wall-clock instant never maps to two different days.
package day

import "time"

// Layout is the canonical YYYY-MM-DD form of a calendar day id.
const Layout = "2006-01-02"

// Clock is an injectable time source so day computation stays testable.
type Clock func() time.Time

// ID returns the calendar day id for the given instant in the given location.
func ID(value time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	return value.In(location).Format(Layout)
}

// Parse converts a day id back to its midnight-UTC time value.
func Parse(id string) (time.Time, error) {
	return time.Parse(Layout, id)
}

// Shift moves a day id by the given number of days.
func Shift(id string, days int) (string, error) {
	parsed, err := Parse(id)
	if err != nil {
		return "", err
	}
	return parsed.AddDate(0, 0, days).Format(Layout), nil
}

// Previous returns the day id immediately before the given one.
func Previous(id string) (string, error) {
	return Shift(id, -1)
}
