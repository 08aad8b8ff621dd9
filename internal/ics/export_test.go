package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/runofshow/runofshow/internal/schedule"
)

func TestExport(t *testing.T) {
	event := &schedule.Event{
		ID:    "evt-1",
		Title: "Launch Day",
		Start: time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 11, 1, 18, 0, 0, 0, time.UTC),
		CalendarBlocks: []schedule.CalendarBlock{
			{ID: "blk-1", Title: "Doors open",
				Start: time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC)},
		},
		Tasks: []schedule.Task{
			{ID: "tsk-1", Title: "Sound check", Description: "Both stages",
				Start:      time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC),
				End:        time.Date(2024, 11, 1, 9, 30, 0, 0, time.UTC),
				AssignedTo: []schedule.Person{{Email: "ava@example.com", Name: "Ava Stone"}}},
		},
	}

	out := Export(event, time.Date(2024, 11, 1, 8, 0, 0, 0, time.UTC))

	// The output must be parseable iCalendar.
	cal, err := ical.ParseCalendar(bytes.NewReader([]byte(out)))
	if err != nil {
		t.Fatalf("exported document does not parse: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("got %d VEVENTs, want 2", len(events))
	}

	byUID := map[string]*ical.VEvent{}
	for _, ve := range events {
		if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
			byUID[p.Value] = ve
		}
	}

	block, ok := byUID["block-blk-1@runofshow"]
	if !ok {
		t.Fatal("block VEVENT missing")
	}
	if p := block.GetProperty(ical.ComponentPropertySummary); p == nil || p.Value != "Doors open" {
		t.Errorf("block summary = %v", p)
	}
	start, err := block.GetStartAt()
	if err != nil {
		t.Fatalf("block start: %v", err)
	}
	if !start.Equal(event.CalendarBlocks[0].Start) {
		t.Errorf("block start = %v", start)
	}

	task, ok := byUID["task-tsk-1@runofshow"]
	if !ok {
		t.Fatal("task VEVENT missing")
	}
	if p := task.GetProperty(ical.ComponentPropertyDescription); p == nil || p.Value != "Both stages" {
		t.Errorf("task description = %v", p)
	}

	if !strings.Contains(out, "ava@example.com") {
		t.Error("task assignee missing from ATTENDEE lines")
	}
}

func TestExportEmptyEvent(t *testing.T) {
	event := &schedule.Event{
		ID:    "evt-1",
		Title: "Quiet Day",
		Start: time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 11, 1, 18, 0, 0, 0, time.UTC),
	}

	out := Export(event, time.Now())
	cal, err := ical.ParseCalendar(bytes.NewReader([]byte(out)))
	if err != nil {
		t.Fatalf("exported document does not parse: %v", err)
	}
	if got := len(cal.Events()); got != 0 {
		t.Errorf("got %d VEVENTs, want none", got)
	}
}
