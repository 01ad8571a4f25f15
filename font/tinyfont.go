package font

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// TinyFace adapts a tinygo.org/x/tinyfont face to Face by rasterizing each
// glyph into an 8-row column bitmap the first time it is requested. Glyph
// width is the font's x-advance, so fonts keep their own spacing and Render
// adds none on top.
//
// TinyFace caches rasterized glyphs and is not safe for concurrent use.
type TinyFace struct {
	f        tinyfont.Fonter
	baseline int16
	cache    map[rune]Glyph
}

// FromTinyfont wraps f. baseline is the display row the font baseline sits
// on; 7 suits fonts up to 8 pixels tall with no descenders below the
// baseline, 6 leaves one row for descenders. Rows outside 0-7 are clipped.
func FromTinyfont(f tinyfont.Fonter, baseline int) *TinyFace {
	return &TinyFace{
		f:        f,
		baseline: int16(baseline),
		cache:    make(map[rune]Glyph),
	}
}

// Glyph implements Face.
func (t *TinyFace) Glyph(r rune) (Glyph, bool) {
	if g, ok := t.cache[r]; ok {
		return g, true
	}
	tg := t.f.GetGlyph(r)
	if tg == nil {
		return Glyph{}, false
	}
	info := tg.Info()
	if info.Rune != r || info.XAdvance == 0 {
		return Glyph{}, false
	}
	grid := &columnGrid{cols: make([]byte, info.XAdvance)}
	tg.Draw(grid, 0, t.baseline, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	g := Glyph{Columns: grid.cols}
	t.cache[r] = g
	return g, true
}

// columnGrid is an offscreen render target for tinyfont glyph drawing. It
// collects lit pixels as column bitmaps, bit 0 the top row.
type columnGrid struct {
	cols []byte
}

var _ drivers.Displayer = &columnGrid{}

func (g *columnGrid) Size() (int16, int16) {
	return int16(len(g.cols)), 8
}

func (g *columnGrid) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || int(x) >= len(g.cols) || y < 0 || y > 7 {
		return
	}
	if c.R == 0 && c.G == 0 && c.B == 0 {
		g.cols[x] &^= 1 << uint(y)
	} else {
		g.cols[x] |= 1 << uint(y)
	}
}

func (g *columnGrid) Display() error {
	return nil
}
