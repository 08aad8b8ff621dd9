package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/runofshow/runofshow/internal/ics"
)

func (a *App) exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the event as an iCalendar file",
		Long: `Export the selected event's calendar blocks and tasks as an
iCalendar (.ics) feed, with task assignees as attendees.`,
		Example: `  runofshow export > launch-day.ics
  runofshow export --out=launch-day.ics`,
		RunE: func(_ *cobra.Command, _ []string) error {
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

			data := ics.Export(event, time.Now())
			if out == "" {
				fmt.Print(data)
				return nil
			}
			if err := os.WriteFile(out, []byte(data), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write to a file instead of stdout")
	return cmd
}
