package report

import (
	"os"

	"golang.org/x/term"
)

const fallbackWidth = 80

// TerminalWidth returns the current terminal width, or a fixed fallback
// when stdout is not a terminal.
func TerminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fallbackWidth
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}
