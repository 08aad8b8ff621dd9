// Package summary renders an event's run of show as shareable plain text.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/runofshow/runofshow/internal/schedule"
	"github.com/runofshow/runofshow/internal/timegrid"
)

// DaySummary holds the flattened, time-ordered view of an event.
type DaySummary struct {
	Event *schedule.Event
	Lines []Line
}

// Line is one entry of the run of show.
type Line struct {
	Start     string // formatted clock label
	End       string
	Title     string
	Assignees []string // display names, empty for calendar blocks
}

// BuildDaySummary flattens calendar blocks and tasks into one ordered
// list. Untitled entries (abandoned drags not yet cleaned up) are
// skipped.
func BuildDaySummary(event *schedule.Event) *DaySummary {
	type entry struct {
		span      schedule.Span
		title     string
		assignees []string
	}

	var entries []entry
	for _, b := range event.CalendarBlocks {
		if b.Title == "" {
			continue
		}
		entries = append(entries, entry{span: b.Span(), title: b.Title})
	}
	for _, t := range event.Tasks {
		if t.Title == "" {
			continue
		}
		var names []string
		for _, p := range t.AssignedTo {
			names = append(names, p.Name)
		}
		entries = append(entries, entry{span: t.Span(), title: t.Title, assignees: names})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].span.Start.Before(entries[j].span.Start)
	})

	s := &DaySummary{Event: event}
	for _, e := range entries {
		s.Lines = append(s.Lines, Line{
			Start:     timegrid.FormatClock(e.span.Start),
			End:       timegrid.FormatClock(e.span.End),
			Title:     e.title,
			Assignees: e.assignees,
		})
	}
	return s
}

// Text renders the summary in the copy-to-clipboard format.
func (s *DaySummary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s - %s)\n", s.Event.Title,
		timegrid.FormatClock(s.Event.Start), timegrid.FormatClock(s.Event.End))
	for _, line := range s.Lines {
		fmt.Fprintf(&b, "%s - %s  %s", line.Start, line.End, line.Title)
		if len(line.Assignees) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(line.Assignees, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}
