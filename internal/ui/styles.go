package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/travel-terminal/internal/scoring"
)

var (
	// Color palette
	colorPrimary = lipgloss.Color("#00FF87") // Score green
	colorDanger  = lipgloss.Color("#FF6B6B") // Red
	colorWarning = lipgloss.Color("#FFA94D") // Orange
	colorSuccess = lipgloss.Color("#6BCF7F") // Green
	colorMuted   = lipgloss.Color("#6C757D") // Gray
	colorBorder  = lipgloss.Color("#4A90E2") // Border blue
	colorLand    = lipgloss.Color("#3A6B4A")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginTop(1)

	sectionBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	landStyle = lipgloss.NewStyle().
			Foreground(colorLand)

	gaugeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2)
)

// tierColor maps a marker tier to its display color
func tierColor(t scoring.Tier) lipgloss.Color {
	switch t {
	case scoring.TierGreen:
		return colorSuccess
	case scoring.TierOrange:
		return colorWarning
	default:
		return colorDanger
	}
}

func tierStyle(t scoring.Tier) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(tierColor(t)).Bold(true)
}
