// Package ical renders leave calendars as RFC 5545 text.
package ical

import (
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/chll-hr/leave-backend/internal/domain/leave"
)

const (
	ProductID    = "-//chll//leaves//EN"
	PublishedTTL = "PT1H"
	ContentType  = "text/calendar; charset=utf-8"
)

// Write renders feed. stamp becomes the DTSTAMP of every event. All-day
// events are dates in the feed's zone; timed events are written in UTC so
// the feed needs no VTIMEZONE.
func Write(w io.Writer, feed leave.CalendarFeed, stamp time.Time) error {
	loc := feed.Location
	if loc == nil {
		loc = time.UTC
	}

	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(feed.Name)
	cal.SetXWRTimezone(loc.String())
	cal.SetXPublishedTTL(PublishedTTL)

	for _, ev := range feed.Events {
		event := cal.AddEvent(ev.UID)
		event.SetDtStampTime(stamp)
		if !ev.Created.IsZero() {
			event.SetCreatedTime(ev.Created)
		}
		if !ev.Modified.IsZero() {
			event.SetModifiedAt(ev.Modified)
		}
		if ev.AllDay {
			event.SetAllDayStartAt(ev.Start.In(loc))
			event.SetAllDayEndAt(ev.End.In(loc))
		} else {
			event.SetStartAt(ev.Start)
			event.SetEndAt(ev.End)
		}
		event.SetSummary(ev.Summary)
		if ev.Description != "" {
			event.SetDescription(ev.Description)
		}
		event.SetStatus(ics.ObjectStatus(ev.Status))
		if ev.Status == leave.EventStatusTentative {
			event.SetTimeTransparency(ics.TransparencyTransparent)
		} else {
			event.SetTimeTransparency(ics.TransparencyOpaque)
		}
	}

	return cal.SerializeTo(w)
}
