package main

import (
	"fmt"
	"sort"

	goghthemes "github.com/willyv3/gogh-themes"
)

// Theme provides all colors for the prompt UI.
type Theme struct {
	// Base colors
	Background string
	Foreground string
	Subtle     string

	// Primary ANSI colors (0-7)
	Black   string
	Red     string
	Green   string
	Yellow  string
	Blue    string
	Magenta string
	Cyan    string
	White   string

	// Semantic aliases for convenience
	Purple string // Alias for Magenta
	Gray   string // Alias for White
}

// themes registry - gogh-themes plus any YAML themes loaded at startup
var themes = make(map[string]Theme)

// CurrentTheme is the active theme
var CurrentTheme Theme

// currentThemeName tracks the current theme name for cycling
var currentThemeName string

// themeOrder defines the order for cycling through themes
var themeOrder []string

// InitTheme loads the built-in themes plus the YAML themes in themesDir and
// activates name, falling back to the first theme in order.
func InitTheme(name, themesDir string) {
	loadGoghThemes()

	if themesDir != "" {
		extra, err := LoadAllThemes(themesDir)
		if err != nil {
			Logger().Warn("failed to load themes", "dir", themesDir, "err", err)
		}
		for n, t := range extra {
			themes[n] = t
		}
	}

	buildThemeOrder()

	theme, exists := themes[name]
	if !exists && len(themeOrder) > 0 {
		name = themeOrder[0]
		theme = themes[name]
	}

	CurrentTheme = theme
	currentThemeName = name
}

// loadGoghThemes converts every gogh-themes palette into a Theme
func loadGoghThemes() {
	for name, gt := range goghthemes.All() {
		themes[name] = Theme{
			Background: gt.Background,
			Foreground: gt.Foreground,
			Subtle:     generateShade(gt.Background, 1.3), // 30% brighter

			Black:   gt.Black,
			Red:     gt.Red,
			Green:   gt.Green,
			Yellow:  gt.Yellow,
			Blue:    gt.Blue,
			Magenta: gt.Magenta,
			Cyan:    gt.Cyan,
			White:   gt.White,

			Purple: gt.Magenta,
			Gray:   gt.White,
		}
	}
}

// buildThemeOrder creates alphabetically sorted theme cycling order
func buildThemeOrder() {
	themeOrder = make([]string, 0, len(themes))
	for name := range themes {
		themeOrder = append(themeOrder, name)
	}
	sort.Strings(themeOrder)
}

// NextTheme cycles to the next theme in the rotation
func NextTheme() string {
	if len(themeOrder) == 0 {
		return currentThemeName
	}

	currentIndex := 0
	for i, name := range themeOrder {
		if name == currentThemeName {
			currentIndex = i
			break
		}
	}

	nextIndex := (currentIndex + 1) % len(themeOrder)
	currentThemeName = themeOrder[nextIndex]
	CurrentTheme = themes[currentThemeName]

	return currentThemeName
}

// GetCurrentThemeName returns the name of the active theme
func GetCurrentThemeName() string {
	return currentThemeName
}

// generateShade adjusts the brightness of a "#rrggbb" color.
// factor < 1.0 darkens, factor > 1.0 brightens. Invalid input comes back as-is.
func generateShade(hexColor string, factor float64) string {
	var r, g, b int
	if _, err := fmt.Sscanf(hexColor, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return hexColor
	}

	return fmt.Sprintf("#%02x%02x%02x",
		clampChannel(float64(r)*factor),
		clampChannel(float64(g)*factor),
		clampChannel(float64(b)*factor))
}

func clampChannel(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}
