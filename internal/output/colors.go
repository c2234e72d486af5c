package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var colorEnabled = detectColor()

func detectColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetColorEnabled forces colored output on or off
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

func render(style lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return style.Render(text)
}

// ColorBranchName colors a branch name cyan
func ColorBranchName(name string) string {
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true), name)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color("3")), text)
}
