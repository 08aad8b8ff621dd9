package tui

import (
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runofshow/runofshow/internal/schedule"
	"github.com/runofshow/runofshow/internal/summary"
	"github.com/runofshow/runofshow/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeEditor:
		return m.handleEditorKeys(msg)
	case ModeAssign:
		return m.handleAssignKeys(msg)
	case ModeConfirmDelete:
		return m.handleConfirmKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "j", "down":
		if m.grid.ScrollOffset < m.grid.MaxScroll() {
			m.grid.ScrollOffset++
		}
		return m, nil

	case "k", "up":
		if m.grid.ScrollOffset > 0 {
			m.grid.ScrollOffset--
		}
		return m, nil

	case "esc":
		m.selected = selection{}
		return m, nil

	case "enter", "e":
		if m.selected.kind != selectNone {
			m.openEditor(false)
		}
		return m, nil

	case "c":
		return m.cycleColor(schedule.NextColor)

	case "C":
		return m.cycleColor(schedule.PrevColor)

	case "a":
		if m.selected.kind == selectTask {
			m.mode = ModeAssign
		}
		return m, nil

	case "d", "backspace", "delete":
		return m.promptDelete()

	case "y":
		return m, copyDaySummary(m.session.Event())

	case "r":
		m.loading = true
		return m, commands.LoadEvent(m.store, m.eventID)
	}

	return m, nil
}

// cycleColor steps the selected block through the palette.
func (m Model) cycleColor(step func(string) string) (tea.Model, tea.Cmd) {
	b := m.selectedBlock()
	if b == nil {
		return m, nil
	}
	next := step(b.Color)
	patch := schedule.BlockPatch{Color: &next}
	prev, version, ok := m.session.PatchBlock(b.ID, patch)
	if !ok {
		return m, nil
	}
	return m, commands.UpdateBlock(m.store, b.ID, patch, prev, version)
}

// promptDelete opens the confirm modal for the selection.
func (m Model) promptDelete() (tea.Model, tea.Cmd) {
	switch m.selected.kind {
	case selectBlock:
		b := m.selectedBlock()
		if b == nil {
			return m, nil
		}
		m.confirmMessage = fmt.Sprintf("Delete block %q?", titleOrUntitled(b.Title))
	case selectTask:
		t := m.selectedTask()
		if t == nil {
			return m, nil
		}
		m.confirmMessage = fmt.Sprintf("Delete task %q?", titleOrUntitled(t.Title))
	default:
		return m, nil
	}
	m.mode = ModeConfirmDelete
	return m, nil
}

func titleOrUntitled(title string) string {
	if title == "" {
		return "Untitled"
	}
	return title
}

// handleConfirmKeys handles the delete confirmation modal.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		sel := m.selected
		m.mode = ModeNormal
		m.confirmMessage = ""
		m.selected = selection{}
		switch sel.kind {
		case selectBlock:
			m.session.RemoveBlock(sel.id)
			return m, commands.DeleteBlock(m.store, sel.id)
		case selectTask:
			m.session.RemoveTask(sel.id)
			return m, commands.DeleteTask(m.store, sel.id)
		}
		return m, nil
	case "n", "esc":
		m.mode = ModeNormal
		m.confirmMessage = ""
		return m, nil
	}
	return m, nil
}

// handleAssignKeys toggles a selected task's assignees by member index.
func (m Model) handleAssignKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" || msg.String() == "a" {
		m.mode = ModeNormal
		return m, nil
	}

	t := m.selectedTask()
	if t == nil {
		m.mode = ModeNormal
		return m, nil
	}

	people := m.assignCandidates()
	idx, err := strconv.Atoi(msg.String())
	if err != nil || idx < 1 || idx > len(people) {
		return m, nil
	}
	person := people[idx-1]

	event := m.session.Event()
	prev := *t
	if t.AssignedToEmail(person.Email) {
		// Optimistically drop the assignee.
		remaining := make([]schedule.Person, 0, len(t.AssignedTo))
		for _, p := range t.AssignedTo {
			if p.Email != person.Email {
				remaining = append(remaining, p)
			}
		}
		version := m.patchAssignees(t.ID, remaining)
		return m, commands.UnassignTask(m.store, t.ID, person.Email, prev, version)
	}

	added := append(append([]schedule.Person{}, t.AssignedTo...), person)
	version := m.patchAssignees(t.ID, added)
	return m, commands.AssignTask(m.store, t.ID, event.ID, person.Email, prev, version)
}

// assignCandidates lists everyone a task can be assigned to: the current
// user first, then the team in order.
func (m *Model) assignCandidates() []schedule.Person {
	current := m.session.CurrentUser()
	out := []schedule.Person{current}
	for _, p := range m.session.Event().TeamMembers {
		if p.Email != current.Email {
			out = append(out, p)
		}
	}
	return out
}

// patchAssignees swaps a task's assignee list via reconcile, bumping the
// task's edit version like any other optimistic mutation.
func (m *Model) patchAssignees(taskID string, assignees []schedule.Person) uint64 {
	_, version, ok := m.session.PatchTask(taskID, schedule.TaskPatch{})
	if !ok {
		return 0
	}
	if t := m.session.Event().Task(taskID); t != nil {
		updated := *t
		updated.AssignedTo = assignees
		m.session.ReconcileTask(updated, version)
	}
	return version
}

// copyDaySummary renders the run of show and puts it on the clipboard.
func copyDaySummary(event *schedule.Event) tea.Cmd {
	return func() tea.Msg {
		text := summary.BuildDaySummary(event).Text()
		return commands.CopiedMsg{Err: clipboard.WriteAll(text)}
	}
}
