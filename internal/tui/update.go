package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runofshow/runofshow/internal/schedule"
	"github.com/runofshow/runofshow/internal/timegrid"
	"github.com/runofshow/runofshow/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.grid.Width = msg.Width
		m.grid.Height = msg.Height
		m.rebuildGrid()
		return m, nil

	case commands.EventLoadedMsg:
		m.session = schedule.NewSession(msg.Event, m.session.CurrentUser())
		m.loading = false
		m.rebuildGrid()
		return m, nil

	case commands.LongPressMsg:
		m.gesture.FireTimer(msg.Seq)
		return m, nil

	case commands.BlockSavedMsg:
		LogStoreResult("block_saved", msg.Block.ID, msg.Version, nil)
		m.session.ReconcileBlock(msg.Block, msg.Version)
		return m, nil

	case commands.BlockSaveFailedMsg:
		LogStoreResult("block_save_failed", msg.ID, msg.Version, msg.Err)
		if msg.Prev.ID != "" {
			m.session.RevertBlock(msg.Prev, msg.Version)
		} else {
			// Create failed: the optimistic append has nothing to revert to.
			m.session.RemoveBlock(msg.ID)
			if m.selected.id == msg.ID {
				m.selected = selection{}
				if m.editor.id == msg.ID {
					m.closeEditor()
				}
			}
		}
		m.setStatus("Error: " + msg.Err.Error())
		return m, clearStatusLater()

	case commands.BlockDeletedMsg:
		if msg.Err != nil {
			LogStoreResult("block_delete_failed", msg.ID, 0, msg.Err)
		}
		return m, nil

	case commands.TaskSavedMsg:
		LogStoreResult("task_saved", msg.Task.ID, msg.Version, nil)
		m.session.ReconcileTask(msg.Task, msg.Version)
		return m, nil

	case commands.TaskSaveFailedMsg:
		LogStoreResult("task_save_failed", msg.ID, msg.Version, msg.Err)
		if msg.Prev.ID != "" {
			m.session.RevertTask(msg.Prev, msg.Version)
		} else {
			m.session.RemoveTask(msg.ID)
			if m.selected.id == msg.ID {
				m.selected = selection{}
				if m.editor.id == msg.ID {
					m.closeEditor()
				}
			}
		}
		m.setStatus("Error: " + msg.Err.Error())
		return m, clearStatusLater()

	case commands.TaskDeletedMsg:
		if msg.Err != nil {
			LogStoreResult("task_delete_failed", msg.ID, 0, msg.Err)
		}
		return m, nil

	case commands.CopiedMsg:
		if msg.Err != nil {
			m.setStatus("Copy failed: " + msg.Err.Error())
		} else {
			m.setStatus("Run of show copied")
		}
		return m, clearStatusLater()

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		m.setStatus("Error: " + msg.Err.Error())
		return m, clearStatusLater()

	case commands.ClearStatusMsg:
		if m.nowFunc().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

func clearStatusLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// handleMouseMsg drives the drag gesture and block selection.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	LogMouse(msg)

	if m.mode != ModeNormal || m.loading {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.grid.ScrollOffset > 0 {
			m.grid.ScrollOffset--
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.grid.ScrollOffset < m.grid.MaxScroll() {
			m.grid.ScrollOffset++
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handlePress(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if y, ok := m.grid.RowAt(msg.Y); ok {
			m.gesture.Move(y)
		}
		return m, nil

	case tea.MouseActionRelease:
		commit, ok := m.gesture.Release()
		if !ok {
			return m, nil
		}
		return m.commitGesture(commit)
	}

	return m, nil
}

// handlePress selects the block under the cursor, or arms a drag on empty
// grid.
func (m Model) handlePress(x, y int) (tea.Model, tea.Cmd) {
	lane, ok := m.grid.LaneAt(x)
	if !ok {
		return m, nil
	}
	row, ok := m.grid.RowAt(y)
	if !ok {
		return m, nil
	}

	// A press on an existing block is a selection, not a drag.
	if hit := m.blockAt(lane, row); hit.kind != selectNone {
		m.selected = hit
		return m, nil
	}

	seq, armTimer := m.gesture.Press(lane.Key, row, lane.IsSchedule())
	if armTimer {
		return m, commands.LongPress(seq, LongPressDelay)
	}
	return m, nil
}

// blockAt hit-tests a lane at a row position.
func (m *Model) blockAt(lane schedule.Lane, row float64) selection {
	event := m.session.Event()
	if lane.IsSchedule() {
		for _, b := range event.CalendarBlocks {
			r := BlockRect(b, event.Start)
			if row >= r.Top && row < r.Top+r.Height {
				return selection{kind: selectBlock, id: b.ID}
			}
		}
		return selection{}
	}
	for _, t := range schedule.TasksInLane(event.Tasks, lane.Person.Email) {
		r := TaskRect(t, event.Start)
		if row >= r.Top && row < r.Top+r.Height {
			return selection{kind: selectTask, id: t.ID}
		}
	}
	return selection{}
}

// commitGesture validates a released drag and creates the block or task.
// Validation failures discard the gesture without creating anything.
func (m Model) commitGesture(commit GestureCommit) (tea.Model, tea.Cmd) {
	event := m.session.Event()
	proposed := schedule.Span{
		Start: timegrid.InstantAtHour(event.Start, commit.StartHour),
		End:   timegrid.InstantAtHour(event.Start, commit.EndHour),
	}

	if commit.LaneKey == schedule.LaneSchedule {
		span, err := schedule.Validate(proposed, event.Span(), event.BlockSpans(), "")
		if err != nil {
			LogGesture("commit_rejected", commit, err)
			m.setStatus(err.Error())
			return m, clearStatusLater()
		}
		block := schedule.CalendarBlock{
			ID:    m.newID(),
			Color: schedule.DefaultColor,
			Start: span.Start,
			End:   span.End,
		}
		version := m.session.AddBlock(block)
		m.selected = selection{kind: selectBlock, id: block.ID}
		m.openEditor(true)
		LogGesture("block_created", commit, nil)
		return m, commands.CreateBlock(m.store, event.ID, block, version)
	}

	email, err := schedule.ResolveAssignee(commit.LaneKey, m.session.CurrentUser(), event.TeamMembers)
	if err != nil {
		LogGesture("commit_rejected", commit, err)
		return m, nil
	}
	span, err := schedule.Validate(proposed, event.Span(), event.TaskSpans(email), "")
	if err != nil {
		LogGesture("commit_rejected", commit, err)
		m.setStatus(err.Error())
		return m, clearStatusLater()
	}

	assignee := m.personByEmail(email)
	task := schedule.Task{
		ID:         m.newID(),
		Start:      span.Start,
		End:        span.End,
		AssignedTo: []schedule.Person{assignee},
	}
	version := m.session.AddTask(task)
	m.selected = selection{kind: selectTask, id: task.ID}
	m.openEditor(true)
	LogGesture("task_created", commit, nil)
	return m, commands.CreateTask(m.store, event.ID, task, email, version)
}

func (m *Model) personByEmail(email string) schedule.Person {
	current := m.session.CurrentUser()
	if current.Email == email {
		return current
	}
	for _, p := range m.session.Event().TeamMembers {
		if p.Email == email {
			return p
		}
	}
	return schedule.Person{Email: email}
}
