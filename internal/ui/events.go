package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/runofshow/runofshow/internal/schedule"
	"github.com/runofshow/runofshow/internal/timegrid"
)

func (a *App) eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List events in the local database",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.open(); err != nil {
				return err
			}
			if a.local == nil {
				return errors.New("events requires storage.local; hosted events are selected by event.id")
			}

			events, err := a.local.ListEvents(context.Background())
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}
			if len(events) == 0 {
				fmt.Println("No events yet. Create one with 'runofshow create'.")
				return nil
			}

			for _, e := range events {
				fmt.Printf("  %s  %s  %s (%s - %s)\n",
					formatMuted(e.ID),
					e.Start.Format("2006-01-02"),
					formatHeader(e.Title),
					timegrid.FormatClock(e.Start),
					timegrid.FormatClock(e.End))
			}
			return nil
		},
	}
}

func (a *App) createCmd() *cobra.Command {
	var (
		title   string
		day     string
		start   string
		end     string
		members []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event in the local database",
		Long: `Create a new event day in the local database.

Members are given as "Name <email>" and become lanes on the grid.`,
		Example: `  runofshow create --title="Launch Day" --day=2026-09-12 --start=8am --end=10pm \
      --member="Ben Reyes <ben@example.com>"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.open(); err != nil {
				return err
			}
			if a.local == nil {
				return errors.New("create requires storage.local; hosted events are made on the web app")
			}

			event, err := buildEvent(title, day, start, end, members, a.current)
			if err != nil {
				return err
			}
			if err := a.local.CreateEvent(context.Background(), event); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}
			fmt.Printf("Created event %s (%s)\n", formatHeader(event.Title), event.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title (required)")
	cmd.Flags().StringVar(&day, "day", "", "Event date, YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&start, "start", "8am", "Day start clock")
	cmd.Flags().StringVar(&end, "end", "10pm", "Day end clock")
	cmd.Flags().StringArrayVar(&members, "member", nil, `Team member as "Name <email>" (repeatable)`)
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// buildEvent assembles a new event from the create flags. The current
// user is always the first team member.
func buildEvent(title, day, start, end string, members []string, current schedule.Person) (*schedule.Event, error) {
	date := time.Now()
	if day != "" {
		var err error
		date, err = time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("parsing day: %w", err)
		}
	}
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	sh, sm, err := timegrid.ParseClock(start)
	if err != nil {
		return nil, fmt.Errorf("parsing start: %w", err)
	}
	eh, em, err := timegrid.ParseClock(end)
	if err != nil {
		return nil, fmt.Errorf("parsing end: %w", err)
	}

	startAt := timegrid.ClockInstant(midnight, sh, sm)
	endAt := timegrid.ClockInstant(midnight, eh, em)
	if !endAt.After(startAt) {
		return nil, errors.New("end must be after start")
	}

	team := []schedule.Person{current}
	for _, m := range members {
		p, err := parseMember(m)
		if err != nil {
			return nil, err
		}
		if p.Email != current.Email {
			team = append(team, p)
		}
	}

	return &schedule.Event{
		ID:          uuid.NewString(),
		Title:       title,
		Start:       startAt,
		End:         endAt,
		TeamMembers: team,
	}, nil
}

// parseMember splits "Name <email>"; a bare address works too.
func parseMember(s string) (schedule.Person, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '<')
	if open < 0 {
		if !strings.Contains(s, "@") {
			return schedule.Person{}, fmt.Errorf("member %q: want \"Name <email>\"", s)
		}
		return schedule.Person{Email: s, Name: s}, nil
	}
	closing := strings.IndexByte(s, '>')
	if closing < open {
		return schedule.Person{}, fmt.Errorf("member %q: unterminated email", s)
	}
	email := strings.TrimSpace(s[open+1 : closing])
	name := strings.TrimSpace(s[:open])
	if email == "" || name == "" {
		return schedule.Person{}, fmt.Errorf("member %q: want \"Name <email>\"", s)
	}
	return schedule.Person{Email: email, Name: name}, nil
}
