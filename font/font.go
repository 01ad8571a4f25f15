// Package font provides column-oriented glyph data for 8-row LED dot-matrix
// displays.
//
// A glyph is a sequence of column bitmaps: one byte per column, bit 0 the
// top row, bit 7 the bottom row. This is the native layout of MAX7219-style
// matrix modules, which makes rendered text directly usable as a scroll
// stream.
//
// The package ships Font5x7, a classic 5×7 ASCII face, and FromTinyfont,
// which adapts any tinygo.org/x/tinyfont face by rasterizing its glyphs
// into column bitmaps.
package font

import (
	"errors"
	"fmt"
)

// ErrUnknownGlyph is returned when a face has no glyph for a rune and no
// fallback glyph was supplied.
var ErrUnknownGlyph = errors.New("font: unknown glyph")

// Glyph is the image of one character: one byte per column, bit 0 the top
// row. The glyph width is len(Columns). Glyph data is read-only; faces hand
// out the same backing arrays on every lookup.
type Glyph struct {
	Columns []byte
}

// Width returns the glyph width in columns.
func (g Glyph) Width() int {
	return len(g.Columns)
}

// Blank returns an empty glyph of the given width, handy as a fallback.
func Blank(width int) Glyph {
	return Glyph{Columns: make([]byte, width)}
}

// Face resolves runes to glyphs.
type Face interface {
	// Glyph returns the glyph for r, or ok=false if the face has none.
	Glyph(r rune) (g Glyph, ok bool)
}

// Table is a Face backed by a rune-indexed column table.
type Table map[rune][]byte

// Glyph implements Face.
func (t Table) Glyph(r rune) (Glyph, bool) {
	cols, ok := t[r]
	if !ok {
		return Glyph{}, false
	}
	return Glyph{Columns: cols}, true
}

// Render resolves every rune of text against face and concatenates the
// glyphs into one column stream. Consecutive glyphs are separated by a
// single blank column unless the glyph on the left already ends in one.
// Runes the face cannot resolve are replaced by fallback; with a nil
// fallback the render fails with an error wrapping ErrUnknownGlyph and
// naming the rune.
//
// Render is pure: it never mutates face or fallback and the same input
// always yields the same stream.
func Render(face Face, text string, fallback *Glyph) ([]byte, error) {
	var out []byte
	for _, r := range text {
		g, ok := face.Glyph(r)
		if !ok {
			if fallback == nil {
				return nil, fmt.Errorf("%w: %q", ErrUnknownGlyph, r)
			}
			g = *fallback
		}
		if n := len(out); n > 0 && out[n-1] != 0 {
			out = append(out, 0)
		}
		out = append(out, g.Columns...)
	}
	return out, nil
}
