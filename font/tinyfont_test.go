package font

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// stubGlyph draws a fixed set of pixels relative to the pen position.
type stubGlyph struct {
	info tinyfont.GlyphInfo
	pix  [][2]int16
}

func (g stubGlyph) Draw(d drivers.Displayer, x, y int16, c color.RGBA) {
	for _, p := range g.pix {
		d.SetPixel(x+p[0], y+p[1], c)
	}
}

func (g stubGlyph) Info() tinyfont.GlyphInfo { return g.info }

type stubFont struct {
	glyphs map[rune]stubGlyph
	hits   int
}

func (f *stubFont) GetGlyph(r rune) tinyfont.Glypher {
	f.hits++
	g, ok := f.glyphs[r]
	if !ok {
		return stubGlyph{}
	}
	return g
}

func (f *stubFont) GetYAdvance() uint8 { return 8 }

func newStubFont() *stubFont {
	return &stubFont{
		glyphs: map[rune]stubGlyph{
			// A tiny T: three pixel top bar on the top display row, two
			// more pixels of stem below it.
			'T': {
				info: tinyfont.GlyphInfo{Rune: 'T', Width: 3, Height: 3, XAdvance: 4, YOffset: -7},
				pix:  [][2]int16{{0, -7}, {1, -7}, {2, -7}, {1, -6}, {1, -5}},
			},
			// Zero advance marks a rune the font cannot draw.
			'e': {
				info: tinyfont.GlyphInfo{Rune: 'e', XAdvance: 0},
			},
			// A descender reaching below the baseline.
			'g': {
				info: tinyfont.GlyphInfo{Rune: 'g', Width: 1, Height: 3, XAdvance: 2, YOffset: 0},
				pix:  [][2]int16{{0, 1}, {0, 2}},
			},
		},
	}
}

func TestFromTinyfontRasterizes(t *testing.T) {
	face := FromTinyfont(newStubFont(), 7)

	g, ok := face.Glyph('T')
	require.True(t, ok)
	assert.Equal(t, 4, g.Width(), "glyph width should be the font's x-advance")
	assert.Equal(t, []byte{0x01, 0x07, 0x01, 0x00}, g.Columns)
}

func TestFromTinyfontMisses(t *testing.T) {
	face := FromTinyfont(newStubFont(), 7)

	_, ok := face.Glyph('z')
	assert.False(t, ok, "rune outside the font should miss")

	_, ok = face.Glyph('e')
	assert.False(t, ok, "zero x-advance should count as a miss")
}

func TestFromTinyfontCaches(t *testing.T) {
	f := newStubFont()
	face := FromTinyfont(f, 7)

	_, ok := face.Glyph('T')
	require.True(t, ok)
	hits := f.hits
	_, ok = face.Glyph('T')
	require.True(t, ok)
	assert.Equal(t, hits, f.hits, "second lookup should come from the cache")
}

func TestFromTinyfontClipsDescenders(t *testing.T) {
	// With the baseline on row 6 the descender's second pixel falls off
	// the bottom of the grid and is dropped.
	face := FromTinyfont(newStubFont(), 6)

	g, ok := face.Glyph('g')
	require.True(t, ok)
	assert.Equal(t, []byte{0x80, 0x00}, g.Columns)
}

func TestFromTinyfontWithRender(t *testing.T) {
	face := FromTinyfont(newStubFont(), 7)

	// The T's advance column is already blank, so Render adds no spacer
	// and the font keeps its own spacing.
	got, err := Render(face, "TT", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x07, 0x01, 0x00, 0x01, 0x07, 0x01, 0x00}, got)
}
