package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLTheme represents the structure of theme YAML files
// These come from terminal color schemes with 16 ANSI colors
type YAMLTheme struct {
	Name       string `yaml:"name"`
	Author     string `yaml:"author"`
	Variant    string `yaml:"variant"` // dark or light
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`

	Color01 string `yaml:"color_01"` // Black
	Color02 string `yaml:"color_02"` // Red
	Color03 string `yaml:"color_03"` // Green
	Color04 string `yaml:"color_04"` // Yellow
	Color05 string `yaml:"color_05"` // Blue
	Color06 string `yaml:"color_06"` // Magenta
	Color07 string `yaml:"color_07"` // Cyan
	Color08 string `yaml:"color_08"` // White
}

// ConvertToTheme maps the ANSI palette onto the UI colors
func (yt *YAMLTheme) ConvertToTheme() Theme {
	return Theme{
		Background: yt.Background,
		Foreground: yt.Foreground,
		Subtle:     generateShade(yt.Background, 1.3),

		Black:   yt.Color01,
		Red:     yt.Color02,
		Green:   yt.Color03,
		Yellow:  yt.Color04,
		Blue:    yt.Color05,
		Magenta: yt.Color06,
		Cyan:    yt.Color07,
		White:   yt.Color08,

		Purple: yt.Color06,
		Gray:   yt.Color08,
	}
}

// LoadThemeFromYAML loads a single YAML theme file
func LoadThemeFromYAML(filePath string) (*YAMLTheme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var yamlTheme YAMLTheme
	if err := yaml.Unmarshal(data, &yamlTheme); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &yamlTheme, nil
}

// LoadAllThemes loads all YAML themes from a directory
// Returns a map of theme-name -> Theme
func LoadAllThemes(themesDir string) (map[string]Theme, error) {
	themeMap := make(map[string]Theme)

	files, err := filepath.Glob(filepath.Join(themesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list theme files: %w", err)
	}

	for _, file := range files {
		yamlTheme, err := LoadThemeFromYAML(file)
		if err != nil {
			// Skip invalid themes, don't fail entire load
			Logger().Warn("skipping theme", "file", file, "err", err)
			continue
		}

		themeName := yamlTheme.Name
		if themeName == "" {
			themeName = strings.TrimSuffix(filepath.Base(file), ".yml")
		}
		themeMap[themeName] = yamlTheme.ConvertToTheme()
	}

	return themeMap, nil
}
