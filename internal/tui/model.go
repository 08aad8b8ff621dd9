package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/runofshow/runofshow/internal/schedule"
	"github.com/runofshow/runofshow/internal/tui/commands"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditor        // editing a block or task's fields
	ModeAssign        // toggling task assignees
	ModeConfirmDelete
)

// selectionKind says what the cursor selection refers to.
type selectionKind int

const (
	selectNone selectionKind = iota
	selectBlock
	selectTask
)

type selection struct {
	kind selectionKind
	id   string
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store   schedule.Store
	eventID string

	// Styles
	styles *Styles

	// State
	session  *schedule.Session
	mode     Mode
	selected selection
	loading  bool

	// Gesture state
	gesture Gesture

	// Editor state
	editor editorModel

	// Confirm modal
	confirmMessage string

	// Grid geometry
	grid Grid

	// Status line
	statusMsg  string
	statusTime time.Time
	err        error

	// Injectable for tests
	nowFunc func() time.Time
	newID   func() string
}

// New creates the TUI model. The event snapshot is loaded by Init.
func New(store schedule.Store, eventID string, current schedule.Person) Model {
	return Model{
		store:   store,
		eventID: eventID,
		styles:  NewStyles(),
		session: schedule.NewSession(&schedule.Event{ID: eventID}, current),
		loading: true,
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
}

// Init loads the event.
func (m Model) Init() tea.Cmd {
	return commands.LoadEvent(m.store, m.eventID)
}

// rebuildGrid recomputes geometry after a resize or event (re)load.
func (m *Model) rebuildGrid() {
	event := m.session.Event()
	m.grid.Lanes = schedule.Lanes(event, m.session.CurrentUser())
	m.grid.Hours = event.Hours()
	if m.grid.ScrollOffset > m.grid.MaxScroll() {
		m.grid.ScrollOffset = m.grid.MaxScroll()
	}
}

// selectedBlock returns the selected calendar block, or nil when the
// selection is empty or a task.
func (m *Model) selectedBlock() *schedule.CalendarBlock {
	if m.selected.kind != selectBlock {
		return nil
	}
	return m.session.Event().CalendarBlock(m.selected.id)
}

func (m *Model) selectedTask() *schedule.Task {
	if m.selected.kind != selectTask {
		return nil
	}
	return m.session.Event().Task(m.selected.id)
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTime = m.nowFunc().Add(3 * time.Second)
}
