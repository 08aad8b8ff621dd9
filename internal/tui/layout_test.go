package tui

import (
	"testing"
	"time"

	"github.com/runofshow/runofshow/internal/schedule"
	"github.com/runofshow/runofshow/internal/timegrid"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 11, 1, hour, minute, 0, 0, time.UTC)
}

func TestBlockRect(t *testing.T) {
	b := schedule.CalendarBlock{Start: at(11, 0), End: at(13, 0)}
	r := BlockRect(b, at(9, 0))

	if want := 2.0 * timegrid.RowHeight; r.Top != want {
		t.Errorf("top = %v, want %v", r.Top, want)
	}
	if want := 2.0*timegrid.RowHeight - BlockChromeInset; r.Height != want {
		t.Errorf("height = %v, want %v", r.Height, want)
	}
}

func TestTaskRectHasNoInset(t *testing.T) {
	task := schedule.Task{Start: at(9, 30), End: at(10, 30)}
	r := TaskRect(task, at(9, 0))

	if want := 0.5 * timegrid.RowHeight; r.Top != want {
		t.Errorf("top = %v, want %v", r.Top, want)
	}
	if want := 1.0 * timegrid.RowHeight; r.Height != want {
		t.Errorf("height = %v, want %v", r.Height, want)
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		name string
		span schedule.Span
		want bool
	}{
		{"half hour", schedule.Span{Start: at(9, 0), End: at(9, 30)}, true},
		{"exactly one hour", schedule.Span{Start: at(9, 0), End: at(10, 0)}, true},
		{"just over an hour", schedule.Span{Start: at(9, 0), End: at(10, 1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compact(tt.span); got != tt.want {
				t.Errorf("Compact() = %v, want %v", got, tt.want)
			}
		})
	}
}

func people(n int) []schedule.Person {
	out := make([]schedule.Person, n)
	for i := range out {
		out[i] = schedule.Person{Email: string(rune('a'+i)) + "@example.com"}
	}
	return out
}

func TestStackAvatars(t *testing.T) {
	tests := []struct {
		name         string
		count        int
		compact      bool
		wantShown    int
		wantOverflow int
	}{
		{"compact three fit", 3, true, 3, 0},
		{"compact four collapses to two plus badge", 4, true, 2, 2},
		{"compact six", 6, true, 2, 4},
		{"full four fit", 4, false, 4, 0},
		{"full five absorbs the last person", 5, false, 5, 0},
		{"full six shows four plus badge", 6, false, 4, 2},
		{"empty", 0, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StackAvatars(people(tt.count), tt.compact)
			if len(got.Shown) != tt.wantShown || got.Overflow != tt.wantOverflow {
				t.Errorf("got %d shown, overflow %d; want %d shown, overflow %d",
					len(got.Shown), got.Overflow, tt.wantShown, tt.wantOverflow)
			}
		})
	}
}

func TestStackAvatarsPicturesSortFirst(t *testing.T) {
	assignees := []schedule.Person{
		{Email: "a@example.com"},
		{Email: "b@example.com", ProfilePicture: "https://example.com/b.png"},
		{Email: "c@example.com"},
		{Email: "d@example.com", ProfilePicture: "https://example.com/d.png"},
	}

	got := StackAvatars(assignees, false)
	if len(got.Shown) != 4 {
		t.Fatalf("got %d shown, want 4", len(got.Shown))
	}
	// Pictures first, and the sort is stable within each group.
	wantOrder := []string{"b@example.com", "d@example.com", "a@example.com", "c@example.com"}
	for i, want := range wantOrder {
		if got.Shown[i].Email != want {
			t.Errorf("shown[%d] = %q, want %q", i, got.Shown[i].Email, want)
		}
	}

	// The input slice is left alone.
	if assignees[0].Email != "a@example.com" {
		t.Error("StackAvatars mutated its input")
	}
}

func TestLaneBlocks(t *testing.T) {
	event := &schedule.Event{
		ID:    "evt-1",
		Start: at(9, 0),
		End:   at(18, 0),
		TeamMembers: []schedule.Person{
			{Email: "ben@example.com", Name: "Ben Reyes"},
		},
		CalendarBlocks: []schedule.CalendarBlock{
			{ID: "blk-2", Title: "Keynote", Color: "218,128,0", Start: at(12, 0), End: at(14, 0)},
			{ID: "blk-1", Title: "Doors open", Color: schedule.DefaultColor, Start: at(9, 0), End: at(10, 0)},
		},
		Tasks: []schedule.Task{
			{ID: "tsk-1", Title: "Sound check", Start: at(9, 0), End: at(9, 30),
				AssignedTo: []schedule.Person{{Email: "ben@example.com", Name: "Ben Reyes"}}},
		},
	}

	t.Run("schedule lane holds blocks sorted by start", func(t *testing.T) {
		got := LaneBlocks(event, schedule.Lane{Key: schedule.LaneSchedule})
		if len(got) != 2 {
			t.Fatalf("got %d blocks, want 2", len(got))
		}
		if got[0].ID != "blk-1" || got[1].ID != "blk-2" {
			t.Errorf("order = %s, %s", got[0].ID, got[1].ID)
		}
		// One-hour block is compact: no time label.
		if !got[0].Compact || got[0].TimeLabel != "" {
			t.Errorf("blk-1 compact = %v, label = %q", got[0].Compact, got[0].TimeLabel)
		}
		if got[1].Compact {
			t.Error("two-hour block should not be compact")
		}
		if got[1].TimeLabel != "12pm - 2pm" {
			t.Errorf("label = %q, want %q", got[1].TimeLabel, "12pm - 2pm")
		}
	})

	t.Run("member lane holds only their tasks", func(t *testing.T) {
		lane := schedule.Lane{Key: "Ben Reyes", Person: event.TeamMembers[0]}
		got := LaneBlocks(event, lane)
		if len(got) != 1 || got[0].ID != "tsk-1" {
			t.Fatalf("got %+v", got)
		}
		if len(got[0].Avatars.Shown) != 1 {
			t.Errorf("avatars = %+v", got[0].Avatars)
		}
	})

	t.Run("unrelated lane is empty", func(t *testing.T) {
		lane := schedule.Lane{Key: "You", Person: schedule.Person{Email: "ava@example.com"}}
		if got := LaneBlocks(event, lane); len(got) != 0 {
			t.Errorf("got %+v, want none", got)
		}
	})
}

func TestPreviewRect(t *testing.T) {
	p := DragPreview{LaneKey: "You", StartHour: 2, EndHour: 4}
	r, startLabel, endLabel := PreviewRect(p, at(9, 0))

	if r.Top != 2*timegrid.RowHeight || r.Height != 2*timegrid.RowHeight {
		t.Errorf("rect = %+v", r)
	}
	if startLabel != "11am" || endLabel != "1pm" {
		t.Errorf("labels = %q, %q", startLabel, endLabel)
	}
}
