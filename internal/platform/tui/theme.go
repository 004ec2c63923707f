package tui

import "github.com/charmbracelet/lipgloss"

// Theme contains the lipgloss styles of the menus and the runs view,
// and the palette the game board is drawn with.
type Theme struct {
	Board Palette

	Title       lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	ItemSolved  lipgloss.Style
	Description lipgloss.Style
	Controls    lipgloss.Style
	Status      lipgloss.Style
	Border      lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Board:       DefaultPalette(),
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ItemSolved:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Controls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Border:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	}
}
