package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI output.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Calendar blocks: cyan, the shared schedule
	colorBlock = color.New(color.FgCyan)

	// Assignee names: green
	colorNames = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatBlock(s string) string {
	return colorBlock.Sprint(s)
}

func formatNames(s string) string {
	return colorNames.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
