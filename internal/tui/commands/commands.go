// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runofshow/runofshow/internal/schedule"
)

// EventLoadedMsg is sent when the event snapshot is loaded.
type EventLoadedMsg struct {
	Event *schedule.Event
}

// BlockSavedMsg is sent when the store confirms a block create or update.
// Version tags the local edit the request was sent for; the model drops
// the message if a later edit has superseded it.
type BlockSavedMsg struct {
	Block   schedule.CalendarBlock
	Version uint64
}

// BlockSaveFailedMsg is sent when a block mutation fails; Prev is the
// last known-good state to roll back to.
type BlockSaveFailedMsg struct {
	ID      string
	Prev    schedule.CalendarBlock
	Version uint64
	Err     error
}

// BlockDeletedMsg is sent when a block delete round trip finishes.
type BlockDeletedMsg struct {
	ID  string
	Err error
}

// TaskSavedMsg is sent when the store confirms a task create or update.
type TaskSavedMsg struct {
	Task    schedule.Task
	Version uint64
}

// TaskSaveFailedMsg is sent when a task mutation fails.
type TaskSaveFailedMsg struct {
	ID      string
	Prev    schedule.Task
	Version uint64
	Err     error
}

// TaskDeletedMsg is sent when a task delete round trip finishes.
type TaskDeletedMsg struct {
	ID  string
	Err error
}

// LongPressMsg is the long-press timer tick for the schedule lane.
type LongPressMsg struct {
	Seq int
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// CopiedMsg is sent after the day summary lands on the clipboard.
type CopiedMsg struct {
	Err error
}

// LoadEvent fetches the event snapshot.
func LoadEvent(store schedule.Store, id string) tea.Cmd {
	return func() tea.Msg {
		event, err := store.GetEvent(context.Background(), id)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return EventLoadedMsg{Event: event}
	}
}

// LongPress arms the schedule-lane long-press timer.
func LongPress(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return LongPressMsg{Seq: seq}
	})
}

// CreateBlock persists an optimistically added block.
func CreateBlock(store schedule.Store, eventID string, b schedule.CalendarBlock, version uint64) tea.Cmd {
	return func() tea.Msg {
		saved, err := store.CreateCalendarBlock(context.Background(), eventID, b)
		if err != nil {
			return BlockSaveFailedMsg{ID: b.ID, Version: version, Err: err}
		}
		return BlockSavedMsg{Block: saved, Version: version}
	}
}

// UpdateBlock mirrors an optimistic block patch to the store. Prev is the
// pre-patch state used for rollback on failure.
func UpdateBlock(store schedule.Store, id string, patch schedule.BlockPatch, prev schedule.CalendarBlock, version uint64) tea.Cmd {
	return func() tea.Msg {
		saved, err := store.UpdateCalendarBlock(context.Background(), id, patch)
		if err != nil {
			return BlockSaveFailedMsg{ID: id, Prev: prev, Version: version, Err: err}
		}
		return BlockSavedMsg{Block: saved, Version: version}
	}
}

// DeleteBlock removes a block from the store.
func DeleteBlock(store schedule.Store, id string) tea.Cmd {
	return func() tea.Msg {
		return BlockDeletedMsg{ID: id, Err: store.DeleteCalendarBlock(context.Background(), id)}
	}
}

// CreateTask persists an optimistically added task.
func CreateTask(store schedule.Store, eventID string, t schedule.Task, assigneeEmail string, version uint64) tea.Cmd {
	return func() tea.Msg {
		saved, err := store.CreateTask(context.Background(), eventID, t, assigneeEmail)
		if err != nil {
			return TaskSaveFailedMsg{ID: t.ID, Version: version, Err: err}
		}
		return TaskSavedMsg{Task: saved, Version: version}
	}
}

// UpdateTask mirrors an optimistic task patch to the store.
func UpdateTask(store schedule.Store, id string, patch schedule.TaskPatch, prev schedule.Task, version uint64) tea.Cmd {
	return func() tea.Msg {
		saved, err := store.UpdateTask(context.Background(), id, patch)
		if err != nil {
			return TaskSaveFailedMsg{ID: id, Prev: prev, Version: version, Err: err}
		}
		return TaskSavedMsg{Task: saved, Version: version}
	}
}

// DeleteTask removes a task from the store.
func DeleteTask(store schedule.Store, id string) tea.Cmd {
	return func() tea.Msg {
		return TaskDeletedMsg{ID: id, Err: store.DeleteTask(context.Background(), id)}
	}
}

// AssignTask adds an assignee to a task.
func AssignTask(store schedule.Store, taskID, eventID, email string, prev schedule.Task, version uint64) tea.Cmd {
	return func() tea.Msg {
		saved, err := store.AssignTask(context.Background(), taskID, eventID, email)
		if err != nil {
			return TaskSaveFailedMsg{ID: taskID, Prev: prev, Version: version, Err: err}
		}
		return TaskSavedMsg{Task: saved, Version: version}
	}
}

// UnassignTask removes an assignee from a task.
func UnassignTask(store schedule.Store, taskID, email string, prev schedule.Task, version uint64) tea.Cmd {
	return func() tea.Msg {
		saved, err := store.UnassignTask(context.Background(), taskID, email)
		if err != nil {
			return TaskSaveFailedMsg{ID: taskID, Prev: prev, Version: version, Err: err}
		}
		return TaskSavedMsg{Task: saved, Version: version}
	}
}
