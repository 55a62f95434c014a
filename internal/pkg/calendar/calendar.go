package calendar

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of whole-day values.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

var ErrInvalidRange = errors.New("Invalid date range")

var two = decimal.NewFromInt(2)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one instant.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DaysBetween returns the number of leave days in [start, end) as seen in loc,
// rounded to the nearest half day. Calendar days are counted on the civil
// calendar so a DST shift never turns a day into 0.96 or 1.04.
func DaysBetween(start, end time.Time, loc *time.Location) decimal.Decimal {
	if !end.After(start) {
		return decimal.Zero
	}
	if loc == nil {
		loc = time.UTC
	}

	s, e := start.In(loc), end.In(loc)
	days := civilDate(e).Sub(civilDate(s)) / (24 * time.Hour)
	secs := secondsOfDay(e) - secondsOfDay(s)

	total := decimal.NewFromInt(int64(days)).
		Add(decimal.NewFromInt(int64(secs)).Div(decimal.NewFromInt(secondsPerDay)))

	return total.Mul(two).Round(0).Div(two)
}

// IsAllDay reports whether t falls exactly on local midnight in loc.
func IsAllDay(t time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	l := t.In(loc)
	return l.Hour() == 0 && l.Minute() == 0 && l.Second() == 0 && l.Nanosecond() == 0
}

// ParseDate reads a YYYY-MM-DD value as local midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseInstant accepts either an RFC 3339 timestamp, which keeps its own
// offset, or a plain date, which becomes local midnight in loc.
func ParseInstant(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := ParseDate(s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q: expected RFC 3339 or YYYY-MM-DD", s)
	}
	return t, nil
}

func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// LoadZone resolves an IANA zone name. An empty or unknown name yields
// fallback together with the lookup error, if any.
func LoadZone(name string, fallback *time.Location) (*time.Location, error) {
	if fallback == nil {
		fallback = time.UTC
	}
	if name == "" {
		return fallback, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback, fmt.Errorf("unknown time zone %q: %w", name, err)
	}
	return loc, nil
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func secondsOfDay(t time.Time) int {
	h, m, s := t.Clock()
	return h*3600 + m*60 + s
}
