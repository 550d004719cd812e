// Package calendar provides a date-only value used for every day-level
// comparison in mindtrack. Entries, goals and weekly windows are keyed by
// calendar day, never by instant, so two values for the same day always
// compare equal regardless of the time zone they were captured in.
package calendar

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/julianstephens/mindtrack/internal/constants"
)

// Date is a calendar day without time-of-day or location.
// The zero value is not a valid day; use IsZero to detect it.
type Date struct {
	year  int
	month time.Month
	day   int
}

// New returns the date for the given year, month and day, normalising
// overflowing values the same way time.Date does.
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// Today returns the current day in loc. A nil loc means time.Local.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.Now().In(loc))
}

// Parse parses a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return FromTime(t), nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Year() int             { return d.year }
func (d Date) Month() time.Month     { return d.month }
func (d Date) Day() int              { return d.day }
func (d Date) IsZero() bool          { return d == Date{} }
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// In returns midnight of the day in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(constants.DateFormat)
}

// AddDays returns the date n days after d (before d when n is negative).
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// StartOfWeek returns the Monday on or before d.
func (d Date) StartOfWeek() Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// Compare returns -1, 0 or 1 when d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	return d.Time().Compare(o.Time())
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// DaysUntil returns the number of whole days from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.Time().Sub(d.Time()).Hours() / 24)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as a YYYY-MM-DD string.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan accepts the textual and timestamp forms drivers return for date columns.
// Timestamps keep only their calendar day so a stray time component never
// shifts the date.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case time.Time:
		*d = FromTime(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into calendar.Date", src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(constants.DateFormat) {
		s = s[:len(constants.DateFormat)]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
