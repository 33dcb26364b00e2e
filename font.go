package main

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Font engines
const (
	EngineOpenType = "opentype" // golang.org/x/image/font/opentype, TTF/OTF/collections
	EngineFreeType = "freetype" // github.com/golang/freetype, TTF only
)

// bundledFontName is used when no fallback font file is configured
const bundledFontName = "Go Regular (bundled)"

// FontSpec describes how to load one face
type FontSpec struct {
	Path      string
	Engine    string
	Size      float64
	DPI       float64
	Threshold uint8
}

// LoadFontFile reads the font at spec.Path and builds a glyph source from it
func LoadFontFile(spec FontSpec) (*faceSource, error) {
	data, err := os.ReadFile(spec.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return LoadFont(spec.Path, data, spec)
}

// LoadBundledFont builds a glyph source from the font shipped with the binary
func LoadBundledFont(spec FontSpec) (*faceSource, error) {
	return LoadFont(bundledFontName, goregular.TTF, spec)
}

// LoadFont parses data with the engine named in spec.
// Rendering is monochrome with full hinting; no transform is applied.
func LoadFont(name string, data []byte, spec FontSpec) (*faceSource, error) {
	var (
		src *faceSource
		err error
	)

	switch spec.Engine {
	case "", EngineOpenType:
		src, err = loadOpenType(data, spec)
	case EngineFreeType:
		src, err = loadFreeType(data, spec)
	default:
		return nil, fmt.Errorf("unknown font engine %q", spec.Engine)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load font %s: %w", name, err)
	}

	src.name = name
	src.threshold = spec.Threshold
	if src.threshold == 0 {
		src.threshold = defaultThreshold
	}

	Logger().Debug("font loaded", "name", name, "engine", spec.Engine, "size", spec.Size, "dpi", spec.DPI)
	return src, nil
}

func loadOpenType(data []byte, spec FontSpec) (*faceSource, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		// Font collections (.ttc/.otc) use their first face
		coll, cerr := opentype.ParseCollection(data)
		if cerr != nil {
			return nil, err
		}
		if f, err = coll.Font(0); err != nil {
			return nil, err
		}
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    spec.Size,
		DPI:     spec.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	var buf sfnt.Buffer
	return &faceSource{
		face: face,
		covers: func(r rune) bool {
			idx, err := f.GlyphIndex(&buf, r)
			return err == nil && idx != 0
		},
	}, nil
}

func loadFreeType(data []byte, spec FontSpec) (*faceSource, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    spec.Size,
		DPI:     spec.DPI,
		Hinting: font.HintingFull,
	})

	return &faceSource{
		face: face,
		covers: func(r rune) bool {
			return f.Index(r) != 0
		},
	}, nil
}

// Fonts is the primary/fallback pair for one run.
// Each run loads its own faces; nothing is shared between runs.
type Fonts struct {
	chain   FallbackChain
	sources []*faceSource
}

// LoadFonts loads the configured primary font (if any) followed by the
// fallback font, or the bundled font when no fallback path is set.
func LoadFonts(cfg Config) (*Fonts, error) {
	spec := FontSpec{
		Engine:    cfg.Engine,
		Size:      cfg.Size,
		DPI:       cfg.DPI,
		Threshold: cfg.Threshold,
	}

	fonts := &Fonts{}
	add := func(src *faceSource) {
		fonts.sources = append(fonts.sources, src)
		fonts.chain = append(fonts.chain, src)
	}

	if cfg.Font != "" {
		spec.Path = cfg.Font
		src, err := LoadFontFile(spec)
		if err != nil {
			return nil, err
		}
		add(src)
	}

	var (
		fallback *faceSource
		err      error
	)
	if cfg.FallbackFont != "" {
		spec.Path = cfg.FallbackFont
		fallback, err = LoadFontFile(spec)
	} else {
		spec.Path = ""
		fallback, err = LoadBundledFont(spec)
	}
	if err != nil {
		fonts.Close()
		return nil, err
	}
	add(fallback)

	return fonts, nil
}

// Source returns the fallback chain
func (f *Fonts) Source() GlyphSource {
	return f.chain
}

// Close releases every face
func (f *Fonts) Close() {
	for _, src := range f.sources {
		_ = src.Close()
	}
}
