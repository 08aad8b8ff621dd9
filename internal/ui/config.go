package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runofshow/runofshow/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View configuration",
		Long: `Display the effective configuration.

If no config file exists, one is created with default values so it can
be edited by hand.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfig(a.config)
		},
	}
}

func runConfig(cfg *config.Config) error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println(formatHeader("[api]"))
	fmt.Printf("  base_url = %s\n", cfg.API.BaseURL)
	fmt.Printf("  token    = %s\n", maskToken(cfg.API.Token))
	fmt.Println(formatHeader("[event]"))
	fmt.Printf("  id = %s\n", cfg.Event.ID)
	fmt.Println(formatHeader("[user]"))
	fmt.Printf("  email = %s\n", cfg.User.Email)
	fmt.Printf("  name  = %s\n", cfg.User.Name)
	fmt.Println(formatHeader("[storage]"))
	fmt.Printf("  db_path = %s\n", cfg.Storage.DBPath)
	fmt.Printf("  local   = %t\n", cfg.Storage.Local)
	fmt.Println(formatHeader("[ui]"))
	fmt.Printf("  debug = %t\n", cfg.UI.Debug)
}

// maskToken keeps secrets out of terminal scrollback.
func maskToken(token string) string {
	if token == "" {
		return "(unset)"
	}
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
