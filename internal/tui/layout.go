package tui

import (
	"sort"
	"time"

	"github.com/runofshow/runofshow/internal/schedule"
	"github.com/runofshow/runofshow/internal/timegrid"
)

// BlockChromeInset is trimmed from a calendar block's height so stacked
// blocks keep a visible seam between them. Tasks render edge to edge.
const BlockChromeInset = 48.0

// Rect is an absolutely positioned rectangle in grid row units, measured
// from the event's axis start.
type Rect struct {
	Top    float64
	Height float64
}

// Compact reports whether a span gets the condensed single-row layout:
// title and avatars only, no time label.
func Compact(s schedule.Span) bool {
	return s.Duration() <= time.Hour
}

// BlockRect positions a calendar block on the axis.
func BlockRect(b schedule.CalendarBlock, axisStart time.Time) Rect {
	height := b.Span().Duration().Hours()*timegrid.RowHeight - BlockChromeInset
	if height < 0 {
		height = 0
	}
	return Rect{Top: timegrid.ToRow(b.Start, axisStart), Height: height}
}

// TaskRect positions a task on the axis.
func TaskRect(t schedule.Task, axisStart time.Time) Rect {
	return Rect{
		Top:    timegrid.ToRow(t.Start, axisStart),
		Height: t.Span().Duration().Hours() * timegrid.RowHeight,
	}
}

// AvatarStack is a capped summary of a task's assignees.
type AvatarStack struct {
	Shown    []schedule.Person
	Overflow int // people hidden behind the "+N" badge, 0 when none
}

// StackAvatars caps an assignee list for display. People with a profile
// picture sort first (stable). Compact blocks show up to 3 avatars, or 2
// plus a badge once there are 4 or more. Full-size blocks show up to 4,
// stretching to 5 when that exactly absorbs the last person.
func StackAvatars(people []schedule.Person, compact bool) AvatarStack {
	sorted := make([]schedule.Person, len(people))
	copy(sorted, people)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProfilePicture != "" && sorted[j].ProfilePicture == ""
	})

	if compact {
		if len(sorted) <= 3 {
			return AvatarStack{Shown: sorted}
		}
		return AvatarStack{Shown: sorted[:2], Overflow: len(sorted) - 2}
	}

	if len(sorted) <= 5 {
		return AvatarStack{Shown: sorted}
	}
	return AvatarStack{Shown: sorted[:4], Overflow: len(sorted) - 4}
}

// LaneBlock is one positioned rectangle handed to the renderer: a
// calendar block or a task, with its display strings precomputed.
type LaneBlock struct {
	ID        string
	Title     string
	Color     string // "R,G,B" palette triple, empty for tasks
	Rect      Rect
	Compact   bool
	TimeLabel string // empty on compact blocks
	Avatars   AvatarStack
}

// LaneBlocks lays out everything visible in one lane, sorted by start.
// The schedule lane holds the event's calendar blocks; every other lane
// holds the tasks assigned to its person.
func LaneBlocks(event *schedule.Event, lane schedule.Lane) []LaneBlock {
	var out []LaneBlock

	if lane.IsSchedule() {
		for _, b := range event.CalendarBlocks {
			compact := Compact(b.Span())
			lb := LaneBlock{
				ID:      b.ID,
				Title:   b.Title,
				Color:   b.Color,
				Rect:    BlockRect(b, event.Start),
				Compact: compact,
			}
			if !compact {
				lb.TimeLabel = spanLabel(b.Span())
			}
			out = append(out, lb)
		}
	} else {
		for _, t := range schedule.TasksInLane(event.Tasks, lane.Person.Email) {
			compact := Compact(t.Span())
			lb := LaneBlock{
				ID:      t.ID,
				Title:   t.Title,
				Rect:    TaskRect(t, event.Start),
				Compact: compact,
				Avatars: StackAvatars(t.AssignedTo, compact),
			}
			if !compact {
				lb.TimeLabel = spanLabel(t.Span())
			}
			out = append(out, lb)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Rect.Top < out[j].Rect.Top })
	return out
}

// PreviewRect positions a live drag preview, with its edge labels.
func PreviewRect(p DragPreview, axisStart time.Time) (Rect, string, string) {
	start := timegrid.InstantAtHour(axisStart, p.StartHour)
	end := timegrid.InstantAtHour(axisStart, p.EndHour)
	r := Rect{
		Top:    float64(p.StartHour) * timegrid.RowHeight,
		Height: float64(p.EndHour-p.StartHour) * timegrid.RowHeight,
	}
	return r, timegrid.FormatClock(start), timegrid.FormatClock(end)
}

func spanLabel(s schedule.Span) string {
	return timegrid.FormatClock(s.Start) + " - " + timegrid.FormatClock(s.End)
}
