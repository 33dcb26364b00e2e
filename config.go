package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultSize      = 16
	defaultDPI       = 72
	defaultThreshold = 128
	defaultTheme     = "Dracula"
	envPrefix        = "FILLART_"
)

// Config holds every setting of a run
type Config struct {
	Font         string  `yaml:"font"`          // primary font file, optional
	FallbackFont string  `yaml:"fallback_font"` // empty uses the bundled font
	Engine       string  `yaml:"engine"`        // opentype or freetype
	Size         float64 `yaml:"size"`          // points
	DPI          float64 `yaml:"dpi"`
	Threshold    uint8   `yaml:"threshold"` // coverage 1-255 counted as "on"
	Theme        string  `yaml:"theme"`
	ThemesDir    string  `yaml:"themes_dir"` // extra YAML themes
	Verbose      bool    `yaml:"verbose"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Engine:    EngineOpenType,
		Size:      defaultSize,
		DPI:       defaultDPI,
		Threshold: defaultThreshold,
		Theme:     defaultTheme,
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/fillart/config.yml (or the
// platform equivalent)
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "fillart", "config.yml")
}

// LoadConfigFile merges the YAML file at path into cfg.
// A missing file is not an error when optional is true.
func LoadConfigFile(cfg *Config, path string, optional bool) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads .env.local, then .env, from dir into the process
// environment. Variables already set win; the first file found is the only
// one loaded.
func LoadDotEnv(dir string) {
	for _, name := range []string{".env.local", ".env"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			Logger().Warn("failed to load env file", "path", path, "err", err)
			continue
		}
		Logger().Debug("env file loaded", "path", path)
		return
	}
}

// ApplyEnv overrides cfg with FILLART_* variables read through getenv
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(envPrefix + "FONT"); v != "" {
		cfg.Font = v
	}
	if v := getenv(envPrefix + "FALLBACK_FONT"); v != "" {
		cfg.FallbackFont = v
	}
	if v := getenv(envPrefix + "ENGINE"); v != "" {
		cfg.Engine = v
	}
	if v := getenv(envPrefix + "THEME"); v != "" {
		cfg.Theme = v
	}
	if v := getenv(envPrefix + "THEMES_DIR"); v != "" {
		cfg.ThemesDir = v
	}
	if v := getenv(envPrefix + "SIZE"); v != "" {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sSIZE: %w", envPrefix, err)
		}
		cfg.Size = size
	}
	if v := getenv(envPrefix + "DPI"); v != "" {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sDPI: %w", envPrefix, err)
		}
		cfg.DPI = dpi
	}
	if v := getenv(envPrefix + "THRESHOLD"); v != "" {
		level, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return fmt.Errorf("invalid %sTHRESHOLD: %w", envPrefix, err)
		}
		cfg.Threshold = uint8(level)
	}
	if v := getenv(envPrefix + "VERBOSE"); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sVERBOSE: %w", envPrefix, err)
		}
		cfg.Verbose = verbose
	}
	return nil
}

// Validate checks cfg for values no font engine can work with
func (c Config) Validate() error {
	switch c.Engine {
	case EngineOpenType, EngineFreeType:
	default:
		return fmt.Errorf("unknown font engine %q (want %s or %s)", c.Engine, EngineOpenType, EngineFreeType)
	}
	if c.Size <= 0 {
		return fmt.Errorf("font size must be positive, got %v", c.Size)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %v", c.DPI)
	}
	if c.Threshold == 0 {
		return fmt.Errorf("threshold must be between 1 and 255")
	}
	return nil
}
