package main

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

// glyphFromBits builds a bitmap from one 0/1 value per pixel
func glyphFromBits(width, height int, bits ...byte) GlyphBitmap {
	return PackBits(0, width, height, func(x, y int) bool {
		return bits[y*width+x] != 0
	})
}

func mustComposite(t *testing.T, glyphs []GlyphBitmap, filler Filler) Grid {
	t.Helper()
	grid, err := Composite(glyphs, filler)
	if err != nil {
		t.Fatalf("Composite error: %v", err)
	}
	return grid
}

func TestNormalizeFiller(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "abc", "abc"},
		{"ascii whitespace", " a\tb\r\nc ", "abc"},
		{"korean", "빼 빼\n로", "빼빼로"},
		{"unicode space kept", "a\u00a0b", "a\u00a0b"},
		{"vertical tab kept", "a\vb", "a\vb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeFiller(tt.input)
			if err != nil {
				t.Fatalf("NormalizeFiller(%q) error: %v", tt.input, err)
			}
			if string(got) != tt.want {
				t.Errorf("NormalizeFiller(%q) = %q, want %q", tt.input, string(got), tt.want)
			}
		})
	}
}

func TestNormalizeFillerEmpty(t *testing.T) {
	for _, input := range []string{"", " ", "\r\n\t  \n"} {
		_, err := NormalizeFiller(input)
		if !errors.Is(err, ErrEmptyFiller) {
			t.Errorf("NormalizeFiller(%q) error = %v, want ErrEmptyFiller", input, err)
		}
		if !IsPrecondition(err) {
			t.Errorf("NormalizeFiller(%q) error is not a precondition error", input)
		}
	}
}

func TestCompositeScenario(t *testing.T) {
	glyphs := []GlyphBitmap{
		glyphFromBits(2, 2, 1, 0, 0, 1),
		glyphFromBits(2, 1, 1, 1),
	}

	grid, err := Render(glyphs, "ab")
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	want := "a ab\n b  "
	if got := grid.String(); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestCompositeCursorSpansRows(t *testing.T) {
	// The cursor is not reset per row or per glyph
	glyphs := []GlyphBitmap{
		glyphFromBits(1, 3, 1, 1, 1),
		glyphFromBits(2, 2, 1, 1, 0, 1),
	}

	grid := mustComposite(t, glyphs, Filler("12345"))
	// Row 2: the second glyph is past its height and pads with spaces
	want := Grid{
		"123",
		"4 5",
		"1  ",
	}
	if diff := cmp.Diff(want, grid); diff != "" {
		t.Errorf("Composite mismatch (-want +got):\n%s", diff)
	}
}

func TestCompositeSingleCharFiller(t *testing.T) {
	glyphs := []GlyphBitmap{
		glyphFromBits(3, 2, 1, 1, 0, 0, 1, 1),
	}
	grid := mustComposite(t, glyphs, Filler("#"))
	want := Grid{"## ", " ##"}
	if diff := cmp.Diff(want, grid); diff != "" {
		t.Errorf("Composite mismatch (-want +got):\n%s", diff)
	}
}

func TestCompositeZeroSizeGlyphs(t *testing.T) {
	tests := []struct {
		name   string
		glyphs []GlyphBitmap
		want   Grid
	}{
		{
			name:   "no glyphs",
			glyphs: nil,
			want:   Grid{},
		},
		{
			name:   "all empty",
			glyphs: []GlyphBitmap{{}, {Width: 4}, {Height: 2}},
			want:   Grid{},
		},
		{
			name: "empty between",
			glyphs: []GlyphBitmap{
				glyphFromBits(1, 1, 1),
				{Rune: ' '},
				glyphFromBits(1, 2, 1, 1),
			},
			want: Grid{"xy", " x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustComposite(t, tt.glyphs, Filler("xy"))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Composite mismatch (-want +got):\n%s", diff)
			}
			if len(got) == 0 && got.String() != "" {
				t.Errorf("empty grid String() = %q, want empty", got.String())
			}
		})
	}
}

func TestCompositeUnalignedWidths(t *testing.T) {
	// 9 and 3 pixel wide glyphs exercise row padding in the packed buffer
	glyphs := []GlyphBitmap{
		PackBits('a', 9, 2, func(x, y int) bool { return x == 8 || y == 1 }),
		PackBits('b', 3, 2, func(x, y int) bool { return x == y }),
	}
	grid := mustComposite(t, glyphs, Filler("o"))
	want := Grid{
		"        oo  ",
		"ooooooooo o ",
	}
	if diff := cmp.Diff(want, grid); diff != "" {
		t.Errorf("Composite mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEmptyFiller(t *testing.T) {
	glyphs := []GlyphBitmap{glyphFromBits(1, 1, 1)}
	_, err := Render(glyphs, " \n ")
	if !errors.Is(err, ErrEmptyFiller) {
		t.Errorf("Render error = %v, want ErrEmptyFiller", err)
	}
}

func TestCompositeEmptyFiller(t *testing.T) {
	glyphs := []GlyphBitmap{glyphFromBits(1, 1, 1)}
	for _, filler := range []Filler{nil, {}} {
		grid, err := Composite(glyphs, filler)
		if !errors.Is(err, ErrEmptyFiller) || !IsPrecondition(err) {
			t.Errorf("Composite(%q) error = %v, want precondition ErrEmptyFiller", string(filler), err)
		}
		if grid != nil {
			t.Errorf("Composite(%q) = %q, want no grid", string(filler), grid)
		}
	}
}

func TestCompositeFlatGlyphTakesNoColumns(t *testing.T) {
	glyphs := []GlyphBitmap{{Rune: '_', Width: 2}, glyphFromBits(1, 1, 1)}
	grid := mustComposite(t, glyphs, Filler("x"))
	if diff := cmp.Diff(Grid{"x"}, grid); diff != "" {
		t.Errorf("Composite mismatch (-want +got):\n%s", diff)
	}
}

func TestCompositeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	filler := Filler("빼빼로abcdefg")

	for iter := 0; iter < 50; iter++ {
		n := rng.Intn(6)
		glyphs := make([]GlyphBitmap, n)
		maxHeight, sumWidth, onBits := 0, 0, 0
		for j := range glyphs {
			w, h := rng.Intn(12), rng.Intn(10)
			glyphs[j] = PackBits(rune('A'+j), w, h, func(x, y int) bool { return rng.Intn(2) == 0 })
			if glyphs[j].Empty() {
				continue
			}
			if h > maxHeight {
				maxHeight = h
			}
			sumWidth += w
			onBits += glyphs[j].Mask().On()
		}

		grid := mustComposite(t, glyphs, filler)

		if len(grid) != maxHeight {
			t.Fatalf("iter %d: %d rows, want %d", iter, len(grid), maxHeight)
		}

		var seq []rune
		for i, row := range grid {
			if got := utf8.RuneCountInString(row); got != sumWidth {
				t.Fatalf("iter %d: row %d has %d columns, want %d", iter, i, got, sumWidth)
			}
			for _, r := range row {
				if r != ' ' {
					seq = append(seq, r)
				}
			}
		}

		if len(seq) != onBits {
			t.Fatalf("iter %d: %d filled cells, want %d", iter, len(seq), onBits)
		}
		for k, r := range seq {
			if want := filler[k%len(filler)]; r != want {
				t.Fatalf("iter %d: filled cell %d = %q, want %q", iter, k, r, want)
			}
		}
	}
}

func TestGridString(t *testing.T) {
	g := Grid{"ab", "cd", "  "}
	if got := g.String(); got != "ab\ncd\n  " {
		t.Errorf("String() = %q", got)
	}
	if strings.HasSuffix(g.String(), "\n") {
		t.Errorf("String() has a trailing line feed")
	}
}
