package calendar

import (
	"time"

	"github.com/shopspring/decimal"
)

// Range is a half-open interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

func NewRange(start, end time.Time) (Range, error) {
	if end.Before(start) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: start, End: end}, nil
}

func (r Range) IsEmpty() bool {
	return !r.End.After(r.Start)
}

// Overlaps is false when either range is empty, matching tstzrange &&.
func (r Range) Overlaps(o Range) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return Overlaps(r.Start, r.End, o.Start, o.End)
}

// Clip returns the part of r that lies inside window. The second result is
// false when nothing is left.
func (r Range) Clip(window Range) (Range, bool) {
	start, end := r.Start, r.End
	if window.Start.After(start) {
		start = window.Start
	}
	if window.End.Before(end) {
		end = window.End
	}
	if !end.After(start) {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

func (r Range) Days(loc *time.Location) decimal.Decimal {
	return DaysBetween(r.Start, r.End, loc)
}

// IsAllDay reports whether both bounds sit on local midnight.
func (r Range) IsAllDay(loc *time.Location) bool {
	return IsAllDay(r.Start, loc) && IsAllDay(r.End, loc)
}
