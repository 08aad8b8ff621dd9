// Package schedule defines the core domain types for runofshow: the event
// that owns the time axis, the calendar blocks and tasks laid out on it,
// and the validation rules that keep them consistent.
package schedule

import (
	"strings"
	"time"
)

// Person is a team member, identified by email. Persons are referenced by
// tasks and lanes, never owned by them.
type Person struct {
	Email          string
	Name           string
	ProfilePicture string // URL, empty when none uploaded
}

// Initials returns up to two uppercase initials for avatar placeholders.
func (p Person) Initials() string {
	var b strings.Builder
	for _, word := range strings.Fields(p.Name) {
		b.WriteString(strings.ToUpper(string([]rune(word)[0])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

// CalendarBlock is an unassigned interval on the shared "Event Schedule"
// lane. Color is an "R,G,B" triple from Palette.
type CalendarBlock struct {
	ID    string
	Title string
	Color string
	Start time.Time
	End   time.Time
}

// Span returns the block's time span.
func (b CalendarBlock) Span() Span {
	return Span{Start: b.Start, End: b.End}
}

// Task is an assignable interval. It appears once per assignee lane.
type Task struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	AssignedTo  []Person
}

// Span returns the task's time span.
func (t Task) Span() Span {
	return Span{Start: t.Start, End: t.End}
}

// AssignedToEmail reports whether the task is assigned to the given person.
func (t Task) AssignedToEmail(email string) bool {
	for _, p := range t.AssignedTo {
		if p.Email == email {
			return true
		}
	}
	return false
}

// Event is the scheduled occasion that owns the absolute time axis. It is
// fetched whole at session start; all mutations are optimistic local
// patches mirrored to the store.
type Event struct {
	ID             string
	Title          string
	Start          time.Time
	End            time.Time
	TeamMembers    []Person
	CalendarBlocks []CalendarBlock
	Tasks          []Task
}

// Span returns the event's time span, the container all blocks live in.
func (e *Event) Span() Span {
	return Span{Start: e.Start, End: e.End}
}

// Hours returns the number of whole hour rows on the event's axis.
func (e *Event) Hours() int {
	h := int(e.End.Sub(e.Start).Hours())
	if e.Start.Add(time.Duration(h) * time.Hour).Before(e.End) {
		h++ // partial trailing hour still gets a row
	}
	return h
}

// Task returns the task with the given id, or nil.
func (e *Event) Task(id string) *Task {
	for i := range e.Tasks {
		if e.Tasks[i].ID == id {
			return &e.Tasks[i]
		}
	}
	return nil
}

// CalendarBlock returns the calendar block with the given id, or nil.
func (e *Event) CalendarBlock(id string) *CalendarBlock {
	for i := range e.CalendarBlocks {
		if e.CalendarBlocks[i].ID == id {
			return &e.CalendarBlocks[i]
		}
	}
	return nil
}

// BlockSpans returns the spans of all calendar blocks, tagged by id, for
// overlap validation on the schedule lane.
func (e *Event) BlockSpans() []TaggedSpan {
	spans := make([]TaggedSpan, 0, len(e.CalendarBlocks))
	for _, b := range e.CalendarBlocks {
		spans = append(spans, TaggedSpan{ID: b.ID, Span: b.Span()})
	}
	return spans
}

// TaskSpans returns the spans of all tasks assigned to email, tagged by id,
// for per-lane overlap validation.
func (e *Event) TaskSpans(email string) []TaggedSpan {
	var spans []TaggedSpan
	for _, t := range e.Tasks {
		if t.AssignedToEmail(email) {
			spans = append(spans, TaggedSpan{ID: t.ID, Span: t.Span()})
		}
	}
	return spans
}

// Palette is the fixed set of calendar block colors, as "R,G,B" triples.
// The first entry is the default for new blocks.
var Palette = []string{
	"2,147,212",
	"218,128,0",
	"8,164,42",
	"142,8,164",
	"190,58,44",
	"89,89,89",
}

// DefaultColor is the color assigned to freshly created calendar blocks.
const DefaultColor = "2,147,212"

// NextColor cycles forward through the palette. Unknown colors start over
// at the first entry.
func NextColor(color string) string {
	for i, c := range Palette {
		if c == color {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return Palette[0]
}

// PrevColor cycles backward through the palette.
func PrevColor(color string) string {
	for i, c := range Palette {
		if c == color {
			return Palette[(i+len(Palette)-1)%len(Palette)]
		}
	}
	return Palette[0]
}
