// Package ics renders an event's day plan as an iCalendar document, so a
// run of show can be pulled into a regular calendar client.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/runofshow/runofshow/internal/schedule"
)

const prodID = "-//runofshow//runofshow//EN"

// Export serializes the event's calendar blocks and tasks as VEVENTs.
// Blocks come out unassigned; tasks carry their assignees as ATTENDEE
// lines. Timestamps are written in UTC.
func Export(event *schedule.Event, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)
	cal.SetName(event.Title)

	for _, b := range event.CalendarBlocks {
		ve := cal.AddEvent(uid("block", b.ID))
		ve.SetDtStampTime(now.UTC())
		ve.SetStartAt(b.Start.UTC())
		ve.SetEndAt(b.End.UTC())
		ve.SetSummary(b.Title)
	}

	for _, t := range event.Tasks {
		ve := cal.AddEvent(uid("task", t.ID))
		ve.SetDtStampTime(now.UTC())
		ve.SetStartAt(t.Start.UTC())
		ve.SetEndAt(t.End.UTC())
		ve.SetSummary(t.Title)
		if t.Description != "" {
			ve.SetDescription(t.Description)
		}
		for _, p := range t.AssignedTo {
			ve.AddAttendee(p.Email, ical.CalendarUserTypeIndividual)
		}
	}

	return cal.Serialize()
}

func uid(kind, id string) string {
	return fmt.Sprintf("%s-%s@runofshow", kind, id)
}
