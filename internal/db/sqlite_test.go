package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/runofshow/runofshow/internal/schedule"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 11, 1, hour, minute, 0, 0, time.UTC)
}

func seedEvent(t *testing.T, s *SQLite) *schedule.Event {
	t.Helper()
	event := &schedule.Event{
		ID:    "evt-1",
		Title: "Launch Day",
		Start: at(9, 0),
		End:   at(18, 0),
		TeamMembers: []schedule.Person{
			{Email: "ava@example.com", Name: "Ava Stone"},
			{Email: "ben@example.com", Name: "Ben Reyes"},
		},
	}
	if err := s.CreateEvent(context.Background(), event); err != nil {
		t.Fatalf("seeding event: %v", err)
	}
	return event
}

func TestGetEvent(t *testing.T) {
	s := newTestStore(t)
	seedEvent(t, s)
	ctx := context.Background()

	got, err := s.GetEvent(ctx, "evt-1")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.Title != "Launch Day" {
		t.Errorf("title = %q", got.Title)
	}
	if !got.Start.Equal(at(9, 0)) || !got.End.Equal(at(18, 0)) {
		t.Errorf("span = %v - %v", got.Start, got.End)
	}
	if len(got.TeamMembers) != 2 {
		t.Fatalf("got %d members, want 2", len(got.TeamMembers))
	}
	// Member order is the order they were added.
	if got.TeamMembers[0].Email != "ava@example.com" {
		t.Errorf("first member = %q", got.TeamMembers[0].Email)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetEvent(context.Background(), "evt-missing"); !errors.Is(err, schedule.ErrEventNotFound) {
		t.Errorf("got %v, want ErrEventNotFound", err)
	}
}

func TestListEvents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, e := range []*schedule.Event{
		{ID: "evt-a", Title: "First", Start: at(9, 0), End: at(12, 0)},
		{ID: "evt-b", Title: "Second", Start: at(13, 0), End: at(18, 0)},
	} {
		if err := s.CreateEvent(ctx, e); err != nil {
			t.Fatalf("creating event: %v", err)
		}
	}

	events, err := s.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Newest start first.
	if events[0].ID != "evt-b" || events[1].ID != "evt-a" {
		t.Errorf("order = %s, %s", events[0].ID, events[1].ID)
	}
}

func TestCalendarBlockLifecycle(t *testing.T) {
	s := newTestStore(t)
	seedEvent(t, s)
	ctx := context.Background()

	block := schedule.CalendarBlock{
		ID:    "blk-1",
		Title: "Doors open",
		Color: schedule.DefaultColor,
		Start: at(9, 0),
		End:   at(10, 0),
	}
	created, err := s.CreateCalendarBlock(ctx, "evt-1", block)
	if err != nil {
		t.Fatalf("CreateCalendarBlock failed: %v", err)
	}
	if created.ID != "blk-1" {
		t.Errorf("created.ID = %q", created.ID)
	}

	title := "Gates open"
	shifted := schedule.Span{Start: at(10, 0), End: at(11, 30)}
	updated, err := s.UpdateCalendarBlock(ctx, "blk-1", schedule.BlockPatch{Title: &title, Span: &shifted})
	if err != nil {
		t.Fatalf("UpdateCalendarBlock failed: %v", err)
	}
	if updated.Title != "Gates open" || !updated.Start.Equal(at(10, 0)) || !updated.End.Equal(at(11, 30)) {
		t.Errorf("updated = %+v", updated)
	}
	// Untouched fields survive a partial update.
	if updated.Color != schedule.DefaultColor {
		t.Errorf("color = %q, want untouched default", updated.Color)
	}

	event, err := s.GetEvent(ctx, "evt-1")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if len(event.CalendarBlocks) != 1 || event.CalendarBlocks[0].Title != "Gates open" {
		t.Errorf("blocks = %+v", event.CalendarBlocks)
	}

	if err := s.DeleteCalendarBlock(ctx, "blk-1"); err != nil {
		t.Fatalf("DeleteCalendarBlock failed: %v", err)
	}
	if err := s.DeleteCalendarBlock(ctx, "blk-1"); !errors.Is(err, schedule.ErrBlockNotFound) {
		t.Errorf("second delete: got %v, want ErrBlockNotFound", err)
	}
}

func TestUpdateCalendarBlock_NotFound(t *testing.T) {
	s := newTestStore(t)
	seedEvent(t, s)

	title := "nope"
	_, err := s.UpdateCalendarBlock(context.Background(), "blk-missing", schedule.BlockPatch{Title: &title})
	if !errors.Is(err, schedule.ErrBlockNotFound) {
		t.Errorf("got %v, want ErrBlockNotFound", err)
	}
}

func TestTaskLifecycle(t *testing.T) {
	s := newTestStore(t)
	seedEvent(t, s)
	ctx := context.Background()

	task := schedule.Task{
		ID:    "tsk-1",
		Title: "Sound check",
		Start: at(9, 0),
		End:   at(9, 30),
	}
	created, err := s.CreateTask(ctx, "evt-1", task, "ava@example.com")
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if !created.AssignedToEmail("ava@example.com") {
		t.Errorf("created = %+v, want ava assigned", created)
	}
	if created.AssignedTo[0].Name != "Ava Stone" {
		t.Errorf("assignee name = %q, want resolved from people", created.AssignedTo[0].Name)
	}

	desc := "Line checks for both stages"
	updated, err := s.UpdateTask(ctx, "tsk-1", schedule.TaskPatch{Description: &desc})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if updated.Description != desc || updated.Title != "Sound check" {
		t.Errorf("updated = %+v", updated)
	}

	if err := s.DeleteTask(ctx, "tsk-1"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if err := s.DeleteTask(ctx, "tsk-1"); !errors.Is(err, schedule.ErrTaskNotFound) {
		t.Errorf("second delete: got %v, want ErrTaskNotFound", err)
	}
}

func TestAssignUnassign(t *testing.T) {
	s := newTestStore(t)
	seedEvent(t, s)
	ctx := context.Background()

	task := schedule.Task{ID: "tsk-1", Title: "Sound check", Start: at(9, 0), End: at(9, 30)}
	if _, err := s.CreateTask(ctx, "evt-1", task, "ava@example.com"); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	got, err := s.AssignTask(ctx, "tsk-1", "evt-1", "ben@example.com")
	if err != nil {
		t.Fatalf("AssignTask failed: %v", err)
	}
	if len(got.AssignedTo) != 2 {
		t.Fatalf("got %d assignees, want 2", len(got.AssignedTo))
	}

	// Assigning twice is idempotent.
	got, err = s.AssignTask(ctx, "tsk-1", "evt-1", "ben@example.com")
	if err != nil {
		t.Fatalf("repeat AssignTask failed: %v", err)
	}
	if len(got.AssignedTo) != 2 {
		t.Fatalf("after repeat assign got %d assignees, want 2", len(got.AssignedTo))
	}

	got, err = s.UnassignTask(ctx, "tsk-1", "ava@example.com")
	if err != nil {
		t.Fatalf("UnassignTask failed: %v", err)
	}
	if len(got.AssignedTo) != 1 || got.AssignedTo[0].Email != "ben@example.com" {
		t.Errorf("after unassign: %+v", got.AssignedTo)
	}

	if _, err := s.AssignTask(ctx, "tsk-missing", "evt-1", "ben@example.com"); !errors.Is(err, schedule.ErrTaskNotFound) {
		t.Errorf("got %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteEventCascades(t *testing.T) {
	s := newTestStore(t)
	seedEvent(t, s)
	ctx := context.Background()

	if _, err := s.CreateCalendarBlock(ctx, "evt-1", schedule.CalendarBlock{
		ID: "blk-1", Title: "Doors open", Color: schedule.DefaultColor,
		Start: at(9, 0), End: at(10, 0),
	}); err != nil {
		t.Fatalf("CreateCalendarBlock failed: %v", err)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, "evt-1"); err != nil {
		t.Fatalf("deleting event: %v", err)
	}

	if _, err := s.getBlock(ctx, "blk-1"); !errors.Is(err, schedule.ErrBlockNotFound) {
		t.Errorf("got %v, want the block cascaded away", err)
	}
}

var _ schedule.Store = (*SQLite)(nil)
