package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
)

const usage = `Usage: fillart [flags] FILE

Draws a word with FILE's own characters and replaces FILE with the result.
Whitespace in FILE is dropped; the remaining characters fill the glyphs in
reading order and repeat as needed.

The bundled fallback font (Go Regular) covers Latin, Greek and Cyrillic only.
Text in other scripts, Hangul and CJK included, needs -font pointing at a
font that has those glyphs; otherwise nothing is drawn.

Flags:
`

// options are the command-line flags
type options struct {
	configPath   string
	text         string
	dryRun       bool
	font         string
	fallbackFont string
	engine       string
	size         float64
	dpi          float64
	threshold    uint
	theme        string
	themesDir    string
	verbose      bool
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var o options
	fs.StringVar(&o.configPath, "config", "", "config file (default "+DefaultConfigPath()+")")
	fs.StringVar(&o.text, "text", "", "text to draw; skips the prompt")
	fs.BoolVar(&o.dryRun, "n", false, "print the art instead of writing FILE")
	fs.StringVar(&o.font, "font", "", "primary font file")
	fs.StringVar(&o.fallbackFont, "fallback-font", "", "fallback font file (default: bundled Go Regular)")
	fs.StringVar(&o.engine, "engine", "", "font engine: opentype or freetype")
	fs.Float64Var(&o.size, "size", 0, "font size in points")
	fs.Float64Var(&o.dpi, "dpi", 0, "font resolution")
	fs.UintVar(&o.threshold, "threshold", 0, "coverage (1-255) at which a pixel is on")
	fs.StringVar(&o.theme, "theme", "", "prompt color theme")
	fs.StringVar(&o.themesDir, "themes-dir", "", "directory of extra YAML themes")
	fs.BoolVar(&o.verbose, "v", false, "log diagnostics to stderr")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	return o, fs.Parse(args)
}

// apply copies the flags that were set on the command line into cfg
func (o options) apply(fs *flag.FlagSet, cfg *Config) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "font":
			cfg.Font = o.font
		case "fallback-font":
			cfg.FallbackFont = o.fallbackFont
		case "engine":
			cfg.Engine = o.engine
		case "size":
			cfg.Size = o.size
		case "dpi":
			cfg.DPI = o.dpi
		case "threshold":
			if o.threshold > 255 {
				err = fmt.Errorf("threshold must be between 1 and 255, got %d", o.threshold)
				return
			}
			cfg.Threshold = uint8(o.threshold)
		case "theme":
			cfg.Theme = o.theme
		case "themes-dir":
			cfg.ThemesDir = o.themesDir
		case "v":
			cfg.Verbose = o.verbose
		}
	})
	return err
}

// resolveConfig layers defaults, the config file, the environment and flags
func resolveConfig(fs *flag.FlagSet, o options, docPath string) (Config, error) {
	cfg := DefaultConfig()

	path, optional := o.configPath, false
	if path == "" {
		path, optional = DefaultConfigPath(), true
	}
	if err := LoadConfigFile(&cfg, path, optional); err != nil {
		return cfg, err
	}

	envDir := "."
	if docPath != "" {
		envDir = filepath.Dir(docPath)
	}
	LoadDotEnv(envDir)
	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}

	if err := o.apply(fs, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fillart", flag.ContinueOnError)
	o, err := parseFlags(fs, args)
	if err != nil {
		return err
	}

	docPath := fs.Arg(0)
	cfg, err := resolveConfig(fs, o, docPath)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	InitTheme(cfg.Theme, cfg.ThemesDir)
	InitStyles()

	doc, err := OpenDocument(docPath)
	if err != nil {
		return err
	}
	if _, err := NormalizeFiller(doc.Text()); err != nil {
		return err
	}

	fonts, err := LoadFonts(cfg)
	if err != nil {
		return err
	}
	defer fonts.Close()

	formatter := &Formatter{Source: fonts.Source()}

	var grid Grid
	if o.text != "" {
		grid, err = formatter.Preview(doc, o.text)
	} else {
		grid, err = RunPrompt(formatter, doc, "")
	}
	if err != nil {
		return err
	}

	if o.dryRun {
		fmt.Println(grid.String())
		return nil
	}
	return formatter.Apply(ctx, doc, grid)
}

func main() {
	// Recover from panics to restore terminal state
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Fatal error: %v\n", r)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Themes are needed for error output too, so load them before anything
	// else can fail.
	InitTheme(themeFromEnv(), os.Getenv(envPrefix+"THEMES_DIR"))
	InitStyles()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, errorStyle.Render(userMessage(err)))
		stop()
		os.Exit(1)
	}
}

func themeFromEnv() string {
	if name := os.Getenv(envPrefix + "THEME"); name != "" {
		return name
	}
	return defaultTheme
}
