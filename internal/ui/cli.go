// Package ui implements the runofshow command line interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/runofshow/runofshow/internal/api"
	"github.com/runofshow/runofshow/internal/config"
	"github.com/runofshow/runofshow/internal/db"
	"github.com/runofshow/runofshow/internal/schedule"
	"github.com/runofshow/runofshow/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command

	store   schedule.Store
	local   *db.SQLite // set when running against the local database
	current schedule.Person

	debug   bool
	eventID string
}

// NewApp creates the CLI application around a loaded config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "runofshow",
		Short: "A terminal run-of-show planner for event days",
		Long: `Runofshow plans a single event day on a shared time grid.

Drag on the grid to carve out calendar blocks and per-person tasks,
cycle block colors, and copy the finished run of show as text. It talks
to the hosted backend by default, or to a local database with
storage.local enabled.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runPlanner()
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+tui.DebugLogPath+")")
	a.root.PersistentFlags().StringVar(&a.eventID, "event", "", "Event ID (overrides event.id from config)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.eventsCmd())
	a.root.AddCommand(a.createCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("runofshow %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the store if one was opened.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// open connects the store and resolves the current user. Hosted mode
// derives the identity from the API token; local mode takes it from the
// user section of the config.
func (a *App) open() error {
	if a.store != nil {
		return nil
	}

	if a.config.Storage.Local {
		store, err := openLocal(a.config.Storage.DBPath)
		if err != nil {
			return err
		}
		a.store = store
		a.local = store
		a.current = localUser(a.config)
		return nil
	}

	client, err := api.New(a.config.API.BaseURL, a.config.API.Token)
	if err != nil {
		return fmt.Errorf("connecting to API: %w", err)
	}
	current, err := client.CurrentUser()
	if err != nil {
		return fmt.Errorf("resolving identity from token: %w", err)
	}
	a.store = client
	a.current = current
	return nil
}

func openLocal(dbPath string) (*db.SQLite, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	store, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return store, nil
}

func localUser(cfg *config.Config) schedule.Person {
	p := schedule.Person{Email: cfg.User.Email, Name: cfg.User.Name}
	if p.Email == "" {
		p.Email = "you@localhost"
	}
	if p.Name == "" {
		p.Name = "You"
	}
	return p
}

// resolveEventID picks the event to operate on: the --event flag, then
// the config, then (locally) the most recent event in the database.
func (a *App) resolveEventID() (string, error) {
	if a.eventID != "" {
		return a.eventID, nil
	}
	if a.config.Event.ID != "" {
		return a.config.Event.ID, nil
	}
	if a.local != nil {
		events, err := a.local.ListEvents(context.Background())
		if err != nil {
			return "", fmt.Errorf("listing events: %w", err)
		}
		if len(events) > 0 {
			return events[0].ID, nil
		}
		return "", errors.New("no events yet; create one with 'runofshow create'")
	}
	return "", errors.New("no event selected; set event.id in the config or pass --event")
}

// runPlanner opens the grid TUI for the selected event.
func (a *App) runPlanner() error {
	if err := a.open(); err != nil {
		return err
	}
	eventID, err := a.resolveEventID()
	if err != nil {
		return err
	}
	return tui.Run(a.store, eventID, a.current, a.debug || a.config.UI.Debug)
}
