package main

import "github.com/charmbracelet/lipgloss"

// Styles are initialized after theme is loaded
// All styles dynamically use CurrentTheme for colors

// GetBaseStyle returns the base text style with theme foreground color
func GetBaseStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Foreground))
}

// GetTitleStyle returns the title style with theme blue color
func GetTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(CurrentTheme.Blue))
}

// GetLabelStyle returns the label style with theme gray color
func GetLabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Gray))
}

// GetArtStyle renders the preview grid
func GetArtStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Green)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(CurrentTheme.Subtle))
}

// GetStatusBarStyle returns the status bar style
func GetStatusBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Gray)).
		Background(lipgloss.Color(CurrentTheme.Subtle))
}

// GetErrorStyle returns the error style with theme red color
func GetErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Red)).
		Bold(true)
}

var (
	baseStyle      = GetBaseStyle()
	titleStyle     = GetTitleStyle()
	labelStyle     = GetLabelStyle()
	artStyle       = GetArtStyle()
	statusBarStyle = GetStatusBarStyle()
	errorStyle     = GetErrorStyle()
)

// InitStyles must be called after InitTheme() to set up global styles
func InitStyles() {
	baseStyle = GetBaseStyle()
	titleStyle = GetTitleStyle()
	labelStyle = GetLabelStyle()
	artStyle = GetArtStyle()
	statusBarStyle = GetStatusBarStyle()
	errorStyle = GetErrorStyle()
}
