package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runofshow/runofshow/internal/schedule"
	"github.com/runofshow/runofshow/internal/timegrid"
)

// View renders the TUI.
func (m Model) View() string {
	if m.grid.Width == 0 {
		return "loading..."
	}
	if m.loading {
		return m.styles.StatusStyle.Render("Loading event...")
	}

	switch m.mode {
	case ModeEditor:
		return m.viewModal(m.viewEditor())
	case ModeConfirmDelete:
		return m.viewModal(m.viewConfirm())
	case ModeAssign:
		return m.viewModal(m.viewAssign())
	}

	return m.viewGrid()
}

func (m Model) viewModal(box string) string {
	return lipgloss.Place(m.grid.Width, m.grid.Height, lipgloss.Center, lipgloss.Center, box)
}

// viewGrid renders the header, the time grid with all lanes, and the
// status line.
func (m Model) viewGrid() string {
	event := m.session.Event()

	header := m.styles.TitleStyle.Render(event.Title) + " " +
		m.styles.StatusStyle.Render(event.Start.Format("Mon Jan 2"))

	laneWidth := m.grid.LaneWidth()
	headers := make([]string, 0, len(m.grid.Lanes)+1)
	headers = append(headers, m.styles.TimeColumnStyle.Render(""))
	for _, lane := range m.grid.Lanes {
		style := m.styles.LaneHeaderStyle
		if lane.Key == schedule.LaneYou {
			style = m.styles.YouHeaderStyle
		}
		headers = append(headers, style.Width(laneWidth).Render(truncate(lane.Key, laneWidth)))
	}

	cols := make([]string, 0, len(m.grid.Lanes)+1)
	cols = append(cols, strings.Join(m.timeColumn(), "\n"))
	for _, lane := range m.grid.Lanes {
		cols = append(cols, strings.Join(m.laneColumn(lane), "\n"))
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

// timeColumn labels each visible hour row on its first line.
func (m Model) timeColumn() []string {
	event := m.session.Event()
	lines := make([]string, m.grid.VisibleHours()*linesPerHour)
	for i := range lines {
		if i%linesPerHour == 0 {
			hour := m.grid.ScrollOffset + i/linesPerHour
			inst := timegrid.InstantAtHour(event.Start, hour)
			label := timegrid.FormatClock(inst)
			if inst.Day() != event.Start.Day() {
				// The axis crossed midnight.
				label += " +1"
			}
			lines[i] = m.styles.TimeColumnStyle.Render(label)
		} else {
			lines[i] = m.styles.TimeColumnStyle.Render("")
		}
	}
	return lines
}

// laneColumn renders one lane: grid texture, its blocks, and the live
// drag preview.
func (m Model) laneColumn(lane schedule.Lane) []string {
	width := m.grid.LaneWidth()
	total := m.grid.VisibleHours() * linesPerHour

	lines := make([]string, total)
	for i := range lines {
		if i%linesPerHour == 0 {
			lines[i] = m.styles.GridLineStyle.Render(strings.Repeat("╌", width))
		} else {
			lines[i] = strings.Repeat(" ", width)
		}
	}

	for _, lb := range LaneBlocks(m.session.Event(), lane) {
		m.paintBlock(lines, lb, width)
	}

	if preview, ok := m.gesture.Preview(); ok && preview.LaneKey == lane.Key {
		m.paintPreview(lines, preview, width)
	}

	return lines
}

// paintBlock writes a block's lines into the lane column, clipped to the
// visible window.
func (m Model) paintBlock(lines []string, lb LaneBlock, width int) {
	startLine := m.grid.LineFor(lb.Rect.Top) - headerLines
	height := m.grid.LinesFor(lb.Rect.Height)

	selected := m.selected.id == lb.ID
	style := m.styles.TaskStyle
	if lb.Color != "" {
		style = m.styles.BlockStyle(lb.Color, selected)
	} else if selected {
		style = m.styles.TaskSelectedStyle
	}

	content := make([]string, 0, 3)
	content = append(content, titleOrUntitled(lb.Title))
	if !lb.Compact {
		content = append(content, lb.TimeLabel)
	}
	if avatars := m.renderAvatars(lb.Avatars); avatars != "" {
		content = append(content, avatars)
	}

	for i := 0; i < height; i++ {
		line := startLine + i
		if line < 0 || line >= len(lines) {
			continue
		}
		text := ""
		if i < len(content) {
			text = content[i]
		}
		lines[line] = style.Width(width).Render(truncate(text, width-2))
	}
}

// paintPreview overlays the in-progress drag rectangle with its edge
// labels.
func (m Model) paintPreview(lines []string, p DragPreview, width int) {
	rect, startLabel, endLabel := PreviewRect(p, m.session.Event().Start)
	startLine := m.grid.LineFor(rect.Top) - headerLines
	height := m.grid.LinesFor(rect.Height)

	for i := 0; i < height; i++ {
		line := startLine + i
		if line < 0 || line >= len(lines) {
			continue
		}
		text := "┆"
		switch {
		case height == 1:
			text = "┌ " + startLabel + " - " + endLabel
		case i == 0:
			text = "┌ " + startLabel
		case i == height-1:
			text = "└ " + endLabel
		}
		lines[line] = m.styles.PreviewStyle.Width(width).Render(truncate(text, width))
	}
}

// renderAvatars draws the capped initials stack.
func (m Model) renderAvatars(stack AvatarStack) string {
	if len(stack.Shown) == 0 {
		return ""
	}
	parts := make([]string, 0, len(stack.Shown)+1)
	for _, p := range stack.Shown {
		parts = append(parts, m.styles.AvatarStyle.Render(p.Initials()))
	}
	if stack.Overflow > 0 {
		parts = append(parts, m.styles.OverflowStyle.Render(fmt.Sprintf("+%d", stack.Overflow)))
	}
	return strings.Join(parts, " ")
}

func (m Model) viewFooter() string {
	if m.statusMsg != "" {
		if m.err != nil {
			return m.styles.ErrorStyle.Render(m.statusMsg)
		}
		return m.styles.StatusStyle.Render(m.statusMsg)
	}
	help := "drag: create  enter: edit  c: color  a: assign  d: delete  y: copy  q: quit"
	return m.styles.HelpStyle.Render(help)
}

// viewEditor renders the field editor modal.
func (m Model) viewEditor() string {
	e := &m.editor

	rows := []string{
		m.styles.TitleStyle.Render(e.heading()),
		"",
		m.editorField("Title", e.title.View(), e.focus == fieldTitle),
		m.editorField("Start", e.start.View(), e.focus == fieldStart),
		m.editorField("End", e.end.View(), e.focus == fieldEnd),
	}
	if e.kind == selectTask {
		rows = append(rows, m.editorField("Notes", e.description.View(), e.focus == fieldDescription))
	}
	if e.errText != "" {
		rows = append(rows, "", m.styles.ErrorStyle.Render(e.errText))
	}
	rows = append(rows, "", m.styles.HelpStyle.Render("tab: next field  enter: save  esc: cancel"))

	return m.styles.EditorStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) editorField(label, input string, focused bool) string {
	style := m.styles.EditorLabelStyle
	if focused {
		style = m.styles.EditorFocusStyle
	}
	return fmt.Sprintf("%s %s", style.Width(6).Render(label), input)
}

// viewConfirm renders the delete confirmation.
func (m Model) viewConfirm() string {
	body := m.confirmMessage + "\n\n" + m.styles.HelpStyle.Render("y: delete  n: keep")
	return m.styles.EditorStyle.Render(body)
}

// viewAssign renders the assignee toggle list.
func (m Model) viewAssign() string {
	t := m.selectedTask()
	if t == nil {
		return m.styles.EditorStyle.Render("No task selected")
	}

	rows := []string{
		m.styles.TitleStyle.Render("Assign: " + titleOrUntitled(t.Title)),
		"",
	}
	for i, p := range m.assignCandidates() {
		marker := " "
		if t.AssignedToEmail(p.Email) {
			marker = "✓"
		}
		rows = append(rows, fmt.Sprintf("%d %s %s", i+1, marker, p.Name))
	}
	rows = append(rows, "", m.styles.HelpStyle.Render("1-9: toggle  esc: done"))

	return m.styles.EditorStyle.Render(strings.Join(rows, "\n"))
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
