package main

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// GlyphSource turns a code point into a monochrome bitmap.
// ok is false when the source has no usable bitmap for r.
type GlyphSource interface {
	Glyph(r rune) (bm GlyphBitmap, ok bool)
}

// FallbackChain tries each source in order; the first usable bitmap wins.
// When every source misses, the result is a zero-size bitmap.
type FallbackChain []GlyphSource

// Glyph implements GlyphSource
func (c FallbackChain) Glyph(r rune) (GlyphBitmap, bool) {
	for i, src := range c {
		if bm, ok := src.Glyph(r); ok {
			if i > 0 {
				Logger().Debug("glyph resolved by fallback", "rune", string(r), "source", i)
			}
			return bm, true
		}
	}
	return GlyphBitmap{Rune: r}, false
}

// Rasterize resolves every rune of text through src.
// Missing glyphs become zero-size bitmaps; this never fails.
func Rasterize(src GlyphSource, text string) []GlyphBitmap {
	var glyphs []GlyphBitmap
	for _, r := range text {
		bm, ok := src.Glyph(r)
		if !ok {
			Logger().Debug("no glyph in any font", "rune", string(r))
			bm = GlyphBitmap{Rune: r}
		}
		glyphs = append(glyphs, bm)
	}
	return glyphs
}

// faceSource adapts a font.Face into a GlyphSource.
// Coverage at or above threshold counts as "on"; anything below is "off".
type faceSource struct {
	name      string
	face      font.Face
	covers    func(r rune) bool
	threshold uint8
}

// Glyph implements GlyphSource
func (s *faceSource) Glyph(r rune) (GlyphBitmap, bool) {
	if s.covers != nil && !s.covers(r) {
		return GlyphBitmap{Rune: r}, false
	}

	// The dot sits at the origin; the ink box comes back in dr and is used
	// as-is, so glyphs are top-aligned by the compositor and the baseline
	// is dropped.
	dr, mask, maskp, _, ok := s.face.Glyph(fixed.Point26_6{}, r)
	if !ok || mask == nil || dr.Empty() {
		return GlyphBitmap{Rune: r}, false
	}

	return binarize(r, dr, mask, maskp, s.threshold), true
}

// Close releases the underlying face
func (s *faceSource) Close() error {
	return s.face.Close()
}

func (s *faceSource) String() string {
	return s.name
}

// binarize packs the coverage mask into a binary bitmap
func binarize(r rune, dr image.Rectangle, mask image.Image, maskp image.Point, level uint8) GlyphBitmap {
	return PackBits(r, dr.Dx(), dr.Dy(), func(x, y int) bool {
		_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
		return uint8(a>>8) >= level
	})
}
