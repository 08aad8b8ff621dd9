package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runofshow/runofshow/internal/schedule"
	"github.com/runofshow/runofshow/internal/timegrid"
	"github.com/runofshow/runofshow/internal/tui/commands"
)

// Editor field indexes, in tab order.
const (
	fieldTitle = iota
	fieldStart
	fieldEnd
	fieldDescription
)

// editorModel drives the inline field editor for a selected block or
// task. Times are free text ("7", "7:15", "7:15 pm").
type editorModel struct {
	active bool
	kind   selectionKind
	id     string
	isNew  bool // created by this gesture; empty title on close deletes it

	title       textinput.Model
	start       textinput.Model
	end         textinput.Model
	description textinput.Model

	prior schedule.Span // span when the editor opened

	focus   int
	errText string
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

// openEditor starts editing the current selection.
func (m *Model) openEditor(isNew bool) {
	var (
		title, desc string
		span        schedule.Span
	)
	switch m.selected.kind {
	case selectBlock:
		b := m.selectedBlock()
		if b == nil {
			return
		}
		title, span = b.Title, b.Span()
	case selectTask:
		t := m.selectedTask()
		if t == nil {
			return
		}
		title, desc, span = t.Title, t.Description, t.Span()
	default:
		return
	}

	e := editorModel{
		active:      true,
		kind:        m.selected.kind,
		id:          m.selected.id,
		isNew:       isNew,
		prior:       span,
		title:       newInput("Untitled", 120),
		start:       newInput("9am", 10),
		end:         newInput("10am", 10),
		description: newInput("Notes", 500),
	}
	e.title.SetValue(title)
	e.start.SetValue(timegrid.FormatClock(span.Start))
	e.end.SetValue(timegrid.FormatClock(span.End))
	e.description.SetValue(desc)
	e.title.Focus()

	m.editor = e
	m.mode = ModeEditor
}

func (e *editorModel) fieldCount() int {
	if e.kind == selectTask {
		return 4
	}
	return 3 // blocks have no description
}

func (e *editorModel) focused() *textinput.Model {
	switch e.focus {
	case fieldTitle:
		return &e.title
	case fieldStart:
		return &e.start
	case fieldEnd:
		return &e.end
	default:
		return &e.description
	}
}

func (e *editorModel) cycleFocus(backward bool) {
	e.focused().Blur()
	if backward {
		e.focus = (e.focus + e.fieldCount() - 1) % e.fieldCount()
	} else {
		e.focus = (e.focus + 1) % e.fieldCount()
	}
	e.focused().Focus()
}

// editorSpan parses the editor's time fields against the event axis. The
// end clock may read before the start; the validator rolls it to the next
// day.
func (m *Model) editorSpan() (schedule.Span, error) {
	event := m.session.Event()

	sh, sm, err := timegrid.ParseClock(m.editor.start.Value())
	if err != nil {
		return schedule.Span{}, err
	}
	eh, em, err := timegrid.ParseClock(m.editor.end.Value())
	if err != nil {
		return schedule.Span{}, err
	}

	start := timegrid.ClockInstant(event.Start, sh, sm)
	start = timegrid.ResolveDayFor(start, event.Start)

	// A start move with an untouched end field shifts the whole span,
	// keeping the duration.
	if m.editor.end.Value() == timegrid.FormatClock(m.editor.prior.End) {
		end := start.Add(m.editor.prior.End.Sub(m.editor.prior.Start))
		return schedule.Span{Start: start, End: end}, nil
	}

	end := timegrid.ClockInstant(start, eh, em)
	return schedule.Span{Start: start, End: end}, nil
}

// saveEditor validates and commits the editor's fields as an optimistic
// patch plus a store round trip.
func (m *Model) saveEditor() tea.Cmd {
	span, err := m.editorSpan()
	if err != nil {
		m.editor.errText = err.Error()
		return nil
	}

	event := m.session.Event()
	title := m.editor.title.Value()
	id := m.editor.id

	switch m.editor.kind {
	case selectBlock:
		normalized, err := schedule.Validate(span, event.Span(), event.BlockSpans(), id)
		if err != nil {
			m.editor.errText = err.Error()
			return nil
		}
		if title == "" && m.editor.isNew {
			return m.discardNew()
		}
		patch := schedule.BlockPatch{Title: &title, Span: &normalized}
		prev, version, ok := m.session.PatchBlock(id, patch)
		if !ok {
			m.closeEditor()
			return nil
		}
		m.closeEditor()
		return commands.UpdateBlock(m.store, id, patch, prev, version)

	case selectTask:
		// Bounds and duration are re-checked on edit; per-assignee
		// overlap is only enforced at creation.
		normalized, err := schedule.Validate(span, event.Span(), nil, id)
		if err != nil {
			m.editor.errText = err.Error()
			return nil
		}
		if title == "" && m.editor.isNew {
			return m.discardNew()
		}
		desc := m.editor.description.Value()
		patch := schedule.TaskPatch{Title: &title, Description: &desc, Span: &normalized}
		prev, version, ok := m.session.PatchTask(id, patch)
		if !ok {
			m.closeEditor()
			return nil
		}
		m.closeEditor()
		return commands.UpdateTask(m.store, id, patch, prev, version)
	}
	return nil
}

// cancelEditor closes without saving. A never-titled fresh entity is an
// abandoned drag and gets deleted.
func (m *Model) cancelEditor() tea.Cmd {
	if m.editor.isNew && m.editor.title.Value() == "" {
		return m.discardNew()
	}
	m.closeEditor()
	return nil
}

func (m *Model) discardNew() tea.Cmd {
	id, kind := m.editor.id, m.editor.kind
	m.closeEditor()
	m.selected = selection{}
	switch kind {
	case selectBlock:
		m.session.RemoveBlock(id)
		return commands.DeleteBlock(m.store, id)
	case selectTask:
		m.session.RemoveTask(id)
		return commands.DeleteTask(m.store, id)
	}
	return nil
}

func (m *Model) closeEditor() {
	m.editor = editorModel{}
	m.mode = ModeNormal
}

// handleEditorKeys routes keys while the editor is open.
func (m Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.cancelEditor()
	case "enter":
		return m, m.saveEditor()
	case "tab", "down":
		m.editor.cycleFocus(false)
		return m, nil
	case "shift+tab", "up":
		m.editor.cycleFocus(true)
		return m, nil
	}

	var cmd tea.Cmd
	field := m.editor.focused()
	*field, cmd = field.Update(msg)
	m.editor.errText = ""
	return m, cmd
}

// editorTitle is the modal heading.
func (e *editorModel) heading() string {
	noun := "task"
	if e.kind == selectBlock {
		noun = "block"
	}
	if e.isNew {
		return fmt.Sprintf("New %s", noun)
	}
	return fmt.Sprintf("Edit %s", noun)
}
