package main

import (
	"context"
	"fmt"
	"unicode"
)

// Formatter renders shape text with a document's own characters and writes
// the result back into the document.
type Formatter struct {
	Source GlyphSource
}

// Preview renders shape using doc's text as filler without touching doc.
// All precondition failures are reported here, before any rendering.
func (f *Formatter) Preview(doc *Document, shape string) (Grid, error) {
	if doc == nil {
		return nil, precondition(ErrNoDocument)
	}
	if shape == "" {
		return nil, precondition(ErrEmptyInput)
	}

	filler, err := NormalizeFiller(doc.Text())
	if err != nil {
		return nil, err
	}

	glyphs := Rasterize(f.Source, shape)
	grid, err := Composite(glyphs, filler)
	if err != nil {
		return nil, err
	}
	if missing := countMissing(glyphs); missing > 0 && missing == len(glyphs) {
		Logger().Warn("no font has any glyph of the text; set a primary font with -font", "text", shape)
	} else if missing > 0 {
		Logger().Warn("glyphs missing in every font", "text", shape, "missing", missing)
	}

	width := 0
	if len(grid) > 0 {
		width = len([]rune(grid[0]))
	}
	Logger().Debug("grid rendered", "glyphs", len(glyphs), "rows", len(grid), "cols", width)

	return grid, nil
}

// countMissing counts glyphs that resolved to nothing. Spaces are not
// counted since they never have ink.
func countMissing(glyphs []GlyphBitmap) int {
	n := 0
	for _, g := range glyphs {
		if g.Empty() && !unicode.IsSpace(g.Rune) {
			n++
		}
	}
	return n
}

// Format replaces doc's contents with shape drawn in doc's own characters.
// The document is written once, after every check has passed.
func (f *Formatter) Format(ctx context.Context, doc *Document, shape string) error {
	grid, err := f.Preview(doc, shape)
	if err != nil {
		return err
	}
	return f.Apply(ctx, doc, grid)
}

// Apply writes a previously rendered grid into doc
func (f *Formatter) Apply(ctx context.Context, doc *Document, grid Grid) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("format cancelled: %w", err)
	}
	if err := doc.Replace(grid.String()); err != nil {
		return err
	}

	Logger().Info("document formatted", "path", doc.Path, "rows", len(grid))
	return nil
}
