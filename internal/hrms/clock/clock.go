// Package clock supplies the service's notion of "today". The calendar
// date depends on the configured time zone, and tests pin it with Fixed.
package clock

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Clock reports the current time in a fixed location.
type Clock struct {
	now func() time.Time
	loc *time.Location
}

// New returns a wall clock reading time in loc.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{now: time.Now, loc: loc}
}

// Fixed returns a clock that always reports t, in t's location.
func Fixed(t time.Time) Clock {
	return Clock{now: func() time.Time { return t }, loc: t.Location()}
}

// Now returns the current time in the clock's location.
func (c Clock) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now().In(c.location())
}

// Today returns the current calendar date as YYYY-MM-DD.
func (c Clock) Today() string {
	return c.Now().Format(DateLayout)
}

// MonthStart returns the first day of the current month as YYYY-MM-DD.
func (c Clock) MonthStart() string {
	n := c.Now()
	return time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, c.location()).Format(DateLayout)
}

// IsFuture reports whether date (YYYY-MM-DD) lies strictly after today.
func (c Clock) IsFuture(date string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	return d.Format(DateLayout) > c.Today()
}

func (c Clock) location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// ParseDate parses a strict YYYY-MM-DD calendar date. Impossible dates such
// as 2024-02-30 are rejected, and so is year 0000, which PostgreSQL DATE
// cannot store.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	if t.Year() < 1 {
		return time.Time{}, fmt.Errorf("parsing date %q: year out of range", s)
	}
	return t, nil
}
