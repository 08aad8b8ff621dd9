package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runofshow/runofshow/internal/schedule"
)

// Run starts the planner TUI for one event. It blocks until the user
// quits.
func Run(store schedule.Store, eventID string, current schedule.Person, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	p := tea.NewProgram(
		New(store, eventID, current),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
