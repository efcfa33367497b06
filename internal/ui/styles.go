package ui

import "github.com/charmbracelet/lipgloss"

var (
	styleHeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	styleHeaderLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleHeaderValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))

	styleTableHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")).Underline(true)
	styleSelected    = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	styleRawRow      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleSpark       = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styleSparkRaw    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	styleFooter       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleFooterKey    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	stylePaused       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	styleSourceErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	styleOverlayBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	styleOverlayTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)
