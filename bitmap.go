package main

// GlyphBitmap is one rasterized character.
// Pixels are bit-packed, row-major, most significant bit first, with Pitch
// bytes per row. A zero Width or Height means the glyph has no ink.
type GlyphBitmap struct {
	Rune   rune
	Width  int
	Height int
	Pitch  int
	Pixels []byte
}

// Empty reports whether the bitmap has no pixels
func (b GlyphBitmap) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// PixelMask is the decoded form of a GlyphBitmap: one value (0 or 1) per pixel
type PixelMask struct {
	Width  int
	Height int
	Bits   []byte
}

// Row returns the pixels of row y
func (m PixelMask) Row(y int) []byte {
	return m.Bits[y*m.Width : (y+1)*m.Width]
}

// On counts the set pixels
func (m PixelMask) On() int {
	n := 0
	for _, bit := range m.Bits {
		if bit != 0 {
			n++
		}
	}
	return n
}

// UnpackBits expands every byte of buf into 8 values, most significant bit first.
// It knows nothing about rows, so padding bits are kept.
func UnpackBits(buf []byte) []byte {
	bits := make([]byte, 0, len(buf)*8)
	for _, b := range buf {
		for j := 7; j >= 0; j-- {
			bits = append(bits, (b>>uint(j))&1)
		}
	}
	return bits
}

// Mask decodes the bitmap row by row.
// Each row consumes Pitch bytes and only its first Width bits are kept, so the
// result always has exactly Width*Height values. Bytes missing from a short
// buffer decode as 0.
func (b GlyphBitmap) Mask() PixelMask {
	if b.Empty() {
		return PixelMask{}
	}

	pitch := b.Pitch
	if pitch <= 0 {
		pitch = (b.Width + 7) / 8
	}

	bits := make([]byte, 0, b.Width*b.Height)
	for y := 0; y < b.Height; y++ {
		start := y * pitch
		end := start + pitch
		if start > len(b.Pixels) {
			start = len(b.Pixels)
		}
		if end > len(b.Pixels) {
			end = len(b.Pixels)
		}

		row := UnpackBits(b.Pixels[start:end])
		if len(row) > b.Width {
			row = row[:b.Width]
		}
		bits = append(bits, row...)
		for i := len(row); i < b.Width; i++ {
			bits = append(bits, 0)
		}
	}

	return PixelMask{Width: b.Width, Height: b.Height, Bits: bits}
}

// PackBits builds a bitmap of the given size with Pitch = ceil(width/8),
// asking on for every pixel.
func PackBits(r rune, width, height int, on func(x, y int) bool) GlyphBitmap {
	if width <= 0 || height <= 0 {
		return GlyphBitmap{Rune: r}
	}

	pitch := (width + 7) / 8
	pixels := make([]byte, pitch*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if on(x, y) {
				pixels[y*pitch+x/8] |= 0x80 >> uint(x%8)
			}
		}
	}

	return GlyphBitmap{
		Rune:   r,
		Width:  width,
		Height: height,
		Pitch:  pitch,
		Pixels: pixels,
	}
}
