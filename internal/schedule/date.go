package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Date is a timezone-naive calendar day (the backend speaks YYYY-MM-DD).
// It is always built from local calendar components, never by formatting a
// time.Time through UTC, so the day a user picked is the day that is sent
// regardless of the host offset.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates the components against the real calendar.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	if y != year || m != month || d != day {
		return Date{}, fmt.Errorf("schedule: invalid date %04d-%02d-%02d", year, int(month), day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// DateOf extracts the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar day in the local location.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	if len(s) != 10 {
		return Date{}, fmt.Errorf("schedule: parse date %q: want YYYY-MM-DD", s)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("schedule: parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports calendar ordering.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// In anchors the day at midnight in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall-clock HH:mm value at 15-minute granularity on the wire.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay validates the components.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("schedule: invalid time %02d:%02d", hour, minute)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseTimeOfDay parses HH:mm.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, fmt.Errorf("schedule: parse time %q: want HH:mm", s)
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("schedule: parse time %q: %w", s, err)
	}
	minute, err := strconv.Atoi(s[3:])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("schedule: parse time %q: %w", s, err)
	}
	return NewTimeOfDay(hour, minute)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// IsZero reports whether t is the zero value (midnight counts as zero; the
// booking window never starts at 00:00).
func (t TimeOfDay) IsZero() bool {
	return t == TimeOfDay{}
}

// Before reports wall-clock ordering.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
