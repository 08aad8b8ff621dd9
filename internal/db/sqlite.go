// Package db provides SQLite storage implementation for offline mode.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/runofshow/runofshow/internal/schedule"
)

// SQLite implements schedule.Store on a local database. It is the backend
// for --local mode, where no hosted API is involved.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite store and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// CreateEvent stores a new event with its team members. Members are
// upserted into people so re-adding a known person refreshes their name.
func (s *SQLite) CreateEvent(ctx context.Context, e *schedule.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO events (id, title, start_time, end_time) VALUES (?, ?, ?, ?)`,
		e.ID, e.Title, encodeTime(e.Start), encodeTime(e.End),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	for i, m := range e.TeamMembers {
		if err := upsertPerson(ctx, tx, m); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO event_members (event_id, email, position) VALUES (?, ?, ?)`,
			e.ID, m.Email, i,
		)
		if err != nil {
			return fmt.Errorf("inserting event member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing event: %w", err)
	}
	return nil
}

func upsertPerson(ctx context.Context, tx *sql.Tx, p schedule.Person) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO people (email, name, profile_picture) VALUES (?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET name = excluded.name, profile_picture = excluded.profile_picture
	`, p.Email, p.Name, p.ProfilePicture)
	if err != nil {
		return fmt.Errorf("upserting person: %w", err)
	}
	return nil
}

// ListEvents returns all stored events, without blocks or tasks, newest
// start first.
func (s *SQLite) ListEvents(ctx context.Context) ([]schedule.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, start_time, end_time FROM events ORDER BY start_time DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []schedule.Event
	for rows.Next() {
		var (
			e          schedule.Event
			start, end string
		)
		if err := rows.Scan(&e.ID, &e.Title, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		if e.Start, err = decodeTime(start); err != nil {
			return nil, err
		}
		if e.End, err = decodeTime(end); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetEvent fetches an event whole, including members, blocks and tasks.
func (s *SQLite) GetEvent(ctx context.Context, id string) (*schedule.Event, error) {
	var (
		e          schedule.Event
		start, end string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, start_time, end_time FROM events WHERE id = ?`, id,
	).Scan(&e.ID, &e.Title, &start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, schedule.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	if e.Start, err = decodeTime(start); err != nil {
		return nil, err
	}
	if e.End, err = decodeTime(end); err != nil {
		return nil, err
	}

	if e.TeamMembers, err = s.eventMembers(ctx, id); err != nil {
		return nil, err
	}
	if e.CalendarBlocks, err = s.eventBlocks(ctx, id); err != nil {
		return nil, err
	}
	if e.Tasks, err = s.eventTasks(ctx, id); err != nil {
		return nil, err
	}

	return &e, nil
}

func (s *SQLite) eventMembers(ctx context.Context, eventID string) ([]schedule.Person, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.email, p.name, p.profile_picture
		FROM event_members m JOIN people p ON p.email = m.email
		WHERE m.event_id = ?
		ORDER BY m.position
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var members []schedule.Person
	for rows.Next() {
		var p schedule.Person
		if err := rows.Scan(&p.Email, &p.Name, &p.ProfilePicture); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		members = append(members, p)
	}
	return members, rows.Err()
}

func (s *SQLite) eventBlocks(ctx context.Context, eventID string) ([]schedule.CalendarBlock, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, color, start_time, end_time
		FROM calendar_blocks WHERE event_id = ?
		ORDER BY start_time
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("querying blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var blocks []schedule.CalendarBlock
	for rows.Next() {
		var (
			b          schedule.CalendarBlock
			start, end string
		)
		if err := rows.Scan(&b.ID, &b.Title, &b.Color, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning block: %w", err)
		}
		if b.Start, err = decodeTime(start); err != nil {
			return nil, err
		}
		if b.End, err = decodeTime(end); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (s *SQLite) eventTasks(ctx context.Context, eventID string) ([]schedule.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, start_time, end_time
		FROM tasks WHERE event_id = ?
		ORDER BY start_time
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []schedule.Task
	for rows.Next() {
		var (
			t          schedule.Task
			start, end string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		if t.Start, err = decodeTime(start); err != nil {
			return nil, err
		}
		if t.End, err = decodeTime(end); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tasks {
		assignees, err := s.taskAssignees(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].AssignedTo = assignees
	}
	return tasks, nil
}

func (s *SQLite) taskAssignees(ctx context.Context, taskID string) ([]schedule.Person, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.email, p.name, p.profile_picture
		FROM task_assignees a JOIN people p ON p.email = a.email
		WHERE a.task_id = ?
		ORDER BY p.email
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("querying assignees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var people []schedule.Person
	for rows.Next() {
		var p schedule.Person
		if err := rows.Scan(&p.Email, &p.Name, &p.ProfilePicture); err != nil {
			return nil, fmt.Errorf("scanning assignee: %w", err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// CreateCalendarBlock persists a new block on the schedule lane.
func (s *SQLite) CreateCalendarBlock(ctx context.Context, eventID string, b schedule.CalendarBlock) (schedule.CalendarBlock, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calendar_blocks (id, event_id, title, color, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, eventID, b.Title, b.Color, encodeTime(b.Start), encodeTime(b.End))
	if err != nil {
		return schedule.CalendarBlock{}, fmt.Errorf("inserting block: %w", err)
	}
	return b, nil
}

// UpdateCalendarBlock applies a partial update and returns the result.
func (s *SQLite) UpdateCalendarBlock(ctx context.Context, id string, patch schedule.BlockPatch) (schedule.CalendarBlock, error) {
	current, err := s.getBlock(ctx, id)
	if err != nil {
		return schedule.CalendarBlock{}, err
	}

	if patch.Title != nil {
		current.Title = *patch.Title
	}
	if patch.Color != nil {
		current.Color = *patch.Color
	}
	if patch.Span != nil {
		current.Start = patch.Span.Start
		current.End = patch.Span.End
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE calendar_blocks SET title = ?, color = ?, start_time = ?, end_time = ?
		WHERE id = ?
	`, current.Title, current.Color, encodeTime(current.Start), encodeTime(current.End), id)
	if err != nil {
		return schedule.CalendarBlock{}, fmt.Errorf("updating block: %w", err)
	}
	return current, nil
}

func (s *SQLite) getBlock(ctx context.Context, id string) (schedule.CalendarBlock, error) {
	var (
		b          schedule.CalendarBlock
		start, end string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, color, start_time, end_time FROM calendar_blocks WHERE id = ?`, id,
	).Scan(&b.ID, &b.Title, &b.Color, &start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.CalendarBlock{}, schedule.ErrBlockNotFound
	}
	if err != nil {
		return schedule.CalendarBlock{}, fmt.Errorf("querying block: %w", err)
	}
	if b.Start, err = decodeTime(start); err != nil {
		return schedule.CalendarBlock{}, err
	}
	if b.End, err = decodeTime(end); err != nil {
		return schedule.CalendarBlock{}, err
	}
	return b, nil
}

// DeleteCalendarBlock removes a block.
func (s *SQLite) DeleteCalendarBlock(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM calendar_blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting block: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return schedule.ErrBlockNotFound
	}
	return nil
}

// CreateTask persists a new task with one initial assignee.
func (s *SQLite) CreateTask(ctx context.Context, eventID string, t schedule.Task, assigneeEmail string) (schedule.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return schedule.Task{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (id, event_id, title, description, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, eventID, t.Title, t.Description, encodeTime(t.Start), encodeTime(t.End))
	if err != nil {
		return schedule.Task{}, fmt.Errorf("inserting task: %w", err)
	}

	if assigneeEmail != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO task_assignees (task_id, email) VALUES (?, ?)`, t.ID, assigneeEmail)
		if err != nil {
			return schedule.Task{}, fmt.Errorf("inserting assignee: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return schedule.Task{}, fmt.Errorf("committing task: %w", err)
	}

	return s.getTask(ctx, t.ID)
}

func (s *SQLite) getTask(ctx context.Context, id string) (schedule.Task, error) {
	var (
		t          schedule.Task
		start, end string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, start_time, end_time FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.Title, &t.Description, &start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.Task{}, schedule.ErrTaskNotFound
	}
	if err != nil {
		return schedule.Task{}, fmt.Errorf("querying task: %w", err)
	}
	if t.Start, err = decodeTime(start); err != nil {
		return schedule.Task{}, err
	}
	if t.End, err = decodeTime(end); err != nil {
		return schedule.Task{}, err
	}
	if t.AssignedTo, err = s.taskAssignees(ctx, id); err != nil {
		return schedule.Task{}, err
	}
	return t, nil
}

// UpdateTask applies a partial update and returns the result.
func (s *SQLite) UpdateTask(ctx context.Context, id string, patch schedule.TaskPatch) (schedule.Task, error) {
	current, err := s.getTask(ctx, id)
	if err != nil {
		return schedule.Task{}, err
	}

	if patch.Title != nil {
		current.Title = *patch.Title
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	if patch.Span != nil {
		current.Start = patch.Span.Start
		current.End = patch.Span.End
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, start_time = ?, end_time = ?
		WHERE id = ?
	`, current.Title, current.Description, encodeTime(current.Start), encodeTime(current.End), id)
	if err != nil {
		return schedule.Task{}, fmt.Errorf("updating task: %w", err)
	}
	return current, nil
}

// DeleteTask removes a task.
func (s *SQLite) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return schedule.ErrTaskNotFound
	}
	return nil
}

// AssignTask adds an assignee and returns the updated task. The person
// must already be known; in local mode everyone comes from the seeded
// event's member list.
func (s *SQLite) AssignTask(ctx context.Context, taskID, eventID, assigneeEmail string) (schedule.Task, error) {
	if _, err := s.getTask(ctx, taskID); err != nil {
		return schedule.Task{}, err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO task_assignees (task_id, email) VALUES (?, ?)
		ON CONFLICT(task_id, email) DO NOTHING
	`, taskID, assigneeEmail)
	if err != nil {
		return schedule.Task{}, fmt.Errorf("assigning task: %w", err)
	}
	return s.getTask(ctx, taskID)
}

// UnassignTask removes an assignee and returns the updated task.
func (s *SQLite) UnassignTask(ctx context.Context, taskID, assigneeEmail string) (schedule.Task, error) {
	if _, err := s.getTask(ctx, taskID); err != nil {
		return schedule.Task{}, err
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM task_assignees WHERE task_id = ? AND email = ?`, taskID, assigneeEmail)
	if err != nil {
		return schedule.Task{}, fmt.Errorf("unassigning task: %w", err)
	}
	return s.getTask(ctx, taskID)
}
