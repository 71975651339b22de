package healthcheck

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles colours the one-line result of each check.
type Styles struct {
	Info lipgloss.Style
	OK   lipgloss.Style
	Warn lipgloss.Style
	Fail lipgloss.Style
	Rule lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Info: lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")), // cyan
		OK:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")), // green
		Warn: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")), // yellow
		Fail: lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true),
		Rule: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}
