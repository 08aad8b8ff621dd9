package schedule

import (
	"context"
	"errors"
)

// Store errors.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrBlockNotFound = errors.New("calendar block not found")
	ErrTaskNotFound  = errors.New("task not found")
)

// BlockPatch is a partial update of a calendar block. Nil fields are left
// untouched.
type BlockPatch struct {
	Title *string
	Color *string
	Span  *Span
}

// TaskPatch is a partial update of a task. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Span        *Span
}

// Store is the persistence collaborator. The engine treats every mutation
// as fire-and-forget; the returned value (or error) only drives the
// optimistic-update reconciliation in Session.
type Store interface {
	// GetEvent fetches an event whole, including members, blocks and tasks.
	GetEvent(ctx context.Context, id string) (*Event, error)

	// CreateCalendarBlock persists a new block on the schedule lane.
	CreateCalendarBlock(ctx context.Context, eventID string, block CalendarBlock) (CalendarBlock, error)

	// UpdateCalendarBlock applies a partial update and returns the result.
	UpdateCalendarBlock(ctx context.Context, id string, patch BlockPatch) (CalendarBlock, error)

	// DeleteCalendarBlock removes a block.
	DeleteCalendarBlock(ctx context.Context, id string) error

	// CreateTask persists a new task with one initial assignee.
	CreateTask(ctx context.Context, eventID string, t Task, assigneeEmail string) (Task, error)

	// UpdateTask applies a partial update and returns the result.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error

	// AssignTask adds an assignee and returns the updated task.
	AssignTask(ctx context.Context, taskID, eventID, assigneeEmail string) (Task, error)

	// UnassignTask removes an assignee and returns the updated task.
	UnassignTask(ctx context.Context, taskID, assigneeEmail string) (Task, error)

	// Close releases any resources held by the store.
	Close() error
}
