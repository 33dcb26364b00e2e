package main

import "strings"

// Filler is the normalized text whose characters replace "on" pixels.
// It is read cyclically and is never empty.
type Filler []rune

// NormalizeFiller strips ASCII spaces, tabs, carriage returns and line feeds.
// Any other character, Unicode whitespace included, is kept.
func NormalizeFiller(s string) (Filler, error) {
	filler := make(Filler, 0, len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\r', '\n':
			continue
		}
		filler = append(filler, r)
	}

	if len(filler) == 0 {
		return nil, precondition(ErrEmptyFiller)
	}
	return filler, nil
}

// Grid is the rendered art, one string per row
type Grid []string

// String joins the rows with single line feeds
func (g Grid) String() string {
	return strings.Join(g, "\n")
}

// cursor walks the filler; it only moves on "on" pixels
type cursor struct {
	filler Filler
	pos    int
}

func (c *cursor) next() rune {
	r := c.filler[c.pos%len(c.filler)]
	c.pos++
	return r
}

// Composite lays glyphs out left to right, top-aligned, and fills their set
// pixels with consecutive filler characters. One cursor threads through the
// whole grid in row order, glyph by glyph within a row.
//
// The grid has max(Height) rows; every row is sum(Width) characters wide.
// Rows below a shorter glyph are padded with spaces.
// An empty filler is a precondition error.
func Composite(glyphs []GlyphBitmap, filler Filler) (Grid, error) {
	if len(filler) == 0 {
		return nil, precondition(ErrEmptyFiller)
	}

	masks := make([]PixelMask, len(glyphs))
	maxHeight := 0
	for j, g := range glyphs {
		masks[j] = g.Mask()
		if !g.Empty() && g.Height > maxHeight {
			maxHeight = g.Height
		}
	}

	cur := cursor{filler: filler}
	rows := make(Grid, 0, maxHeight)
	var row strings.Builder
	for i := 0; i < maxHeight; i++ {
		row.Reset()
		for j, g := range glyphs {
			// Zero width or zero height: the glyph takes no columns at all,
			// so its neighbours keep their placement.
			if g.Empty() {
				continue
			}
			if i >= g.Height {
				row.WriteString(strings.Repeat(" ", g.Width))
				continue
			}
			for _, bit := range masks[j].Row(i) {
				if bit != 0 {
					row.WriteRune(cur.next())
				} else {
					row.WriteByte(' ')
				}
			}
		}
		rows = append(rows, row.String())
	}

	return rows, nil
}

// Render normalizes rawFiller and composites glyphs with it
func Render(glyphs []GlyphBitmap, rawFiller string) (Grid, error) {
	filler, err := NormalizeFiller(rawFiller)
	if err != nil {
		return nil, err
	}
	return Composite(glyphs, filler)
}
