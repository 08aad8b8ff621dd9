package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runofshow/runofshow/internal/summary"
)

func (a *App) showCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the run of show for the selected event",
		Long: `Print the event's time-ordered run of show: calendar blocks and
tasks with their assignees, in the same format the TUI copies to the
clipboard.`,
		Example: `  runofshow show
  runofshow show --event=ev_123`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			return a.runShow()
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func (a *App) runShow() error {
	if err := a.open(); err != nil {
		return err
	}
	eventID, err := a.resolveEventID()
	if err != nil {
		return err
	}

	event, err := a.store.GetEvent(context.Background(), eventID)
	if err != nil {
		return fmt.Errorf("loading event: %w", err)
	}

	s := summary.BuildDaySummary(event)

	header := fmt.Sprintf("%s  %s", event.Title, event.Start.Format("Mon Jan 2, 2006"))
	fmt.Printf("\n  %s\n", formatHeader(header))
	rule := termWidth() - 4
	if rule > 74 {
		rule = 74
	}
	fmt.Println("  " + formatMuted(strings.Repeat("─", rule)))

	if len(s.Lines) == 0 {
		fmt.Println("  Nothing scheduled yet.")
		return nil
	}

	for _, line := range s.Lines {
		// Pad before coloring so the escape codes don't skew the column.
		label := formatMuted(fmt.Sprintf("%-18s", line.Start+" - "+line.End))
		if len(line.Assignees) == 0 {
			// Calendar blocks carry no assignees.
			fmt.Printf("  %s %s\n", label, formatBlock(line.Title))
			continue
		}
		fmt.Printf("  %s %s %s\n", label, line.Title,
			formatNames("("+strings.Join(line.Assignees, ", ")+")"))
	}
	return nil
}
