// Package tui provides the terminal user interface for runofshow.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Minimum lane width in cells; lanes stretch to fill the terminal.
const minLaneWidth = 18

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	colorBg        lipgloss.Color
	colorFg        lipgloss.Color
	colorFgMuted   lipgloss.Color
	colorAccent    lipgloss.Color
	colorSelection lipgloss.Color
	colorWarning   lipgloss.Color

	TitleStyle      lipgloss.Style
	LaneHeaderStyle lipgloss.Style
	YouHeaderStyle  lipgloss.Style
	TimeColumnStyle lipgloss.Style
	GridLineStyle   lipgloss.Style

	TaskStyle         lipgloss.Style
	TaskSelectedStyle lipgloss.Style
	PreviewStyle      lipgloss.Style
	AvatarStyle       lipgloss.Style
	OverflowStyle     lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	EditorStyle      lipgloss.Style
	EditorLabelStyle lipgloss.Style
	EditorFocusStyle lipgloss.Style
}

// NewStyles builds the style set.
func NewStyles() *Styles {
	s := &Styles{
		colorBg:        lipgloss.Color("#1e1e2e"),
		colorFg:        lipgloss.Color("#cdd6f4"),
		colorFgMuted:   lipgloss.Color("#6c7086"),
		colorAccent:    lipgloss.Color("#89b4fa"),
		colorSelection: lipgloss.Color("#45475a"),
		colorWarning:   lipgloss.Color("#f38ba8"),
	}

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorAccent)
	s.LaneHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorFg).Align(lipgloss.Center)
	s.YouHeaderStyle = s.LaneHeaderStyle.Foreground(s.colorAccent)
	s.TimeColumnStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted).Width(8).Align(lipgloss.Right).PaddingRight(1)
	s.GridLineStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)

	s.TaskStyle = lipgloss.NewStyle().Background(s.colorSelection).Foreground(s.colorFg).Padding(0, 1)
	s.TaskSelectedStyle = s.TaskStyle.Bold(true).Background(s.colorAccent).Foreground(s.colorBg)
	s.PreviewStyle = lipgloss.NewStyle().Foreground(s.colorAccent).Italic(true)
	s.AvatarStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorBg).Background(s.colorFgMuted)
	s.OverflowStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)

	s.StatusStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.ErrorStyle = lipgloss.NewStyle().Foreground(s.colorWarning)
	s.HelpStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)

	s.EditorStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(s.colorAccent).Padding(1, 2)
	s.EditorLabelStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.EditorFocusStyle = lipgloss.NewStyle().Foreground(s.colorAccent).Bold(true)

	return s
}

// BlockStyle renders a calendar block in its palette color.
func (s *Styles) BlockStyle(rgb string, selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().Background(paletteColor(rgb)).Foreground(s.colorBg).Padding(0, 1)
	if selected {
		style = style.Bold(true).Underline(true)
	}
	return style
}

// paletteColor converts an "R,G,B" triple into a lipgloss color. Unknown
// strings fall back to a neutral grey.
func paletteColor(rgb string) lipgloss.Color {
	parts := strings.Split(rgb, ",")
	if len(parts) != 3 {
		return lipgloss.Color("#595959")
	}
	vals := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return lipgloss.Color("#595959")
		}
		vals[i] = v
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", vals[0], vals[1], vals[2]))
}
