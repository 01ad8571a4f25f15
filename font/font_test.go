package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []byte
	}{
		{"empty", "", nil},
		{"single glyph", "L", []byte{0x7F, 0x40, 0x40, 0x40, 0x40}},
		{
			"spacer between glyphs", "LL",
			[]byte{0x7F, 0x40, 0x40, 0x40, 0x40, 0x00, 0x7F, 0x40, 0x40, 0x40, 0x40},
		},
		{
			// I ends in a blank column, so no spacer is added before the next glyph.
			"no double spacing", "II",
			[]byte{0x00, 0x41, 0x7F, 0x41, 0x00, 0x00, 0x41, 0x7F, 0x41, 0x00},
		},
		{
			"leading space", " L",
			[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x7F, 0x40, 0x40, 0x40, 0x40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(Font5x7, tt.text, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderUnknownRune(t *testing.T) {
	cols, err := Render(Font5x7, "π", nil)
	assert.Nil(t, cols)
	assert.ErrorIs(t, err, ErrUnknownGlyph)
	assert.Contains(t, err.Error(), "π")
}

func TestRenderFallback(t *testing.T) {
	fb := Blank(2)
	got, err := Render(Font5x7, "LπI", &fb)
	require.NoError(t, err)

	// L, spacer, two fallback columns, then I with no extra spacer since
	// the fallback already ends blank.
	want := []byte{
		0x7F, 0x40, 0x40, 0x40, 0x40,
		0x00,
		0x00, 0x00,
		0x00, 0x41, 0x7F, 0x41, 0x00,
	}
	assert.Equal(t, want, got)
}

func TestRenderIsPure(t *testing.T) {
	first, err := Render(Font5x7, "LI", nil)
	require.NoError(t, err)

	// Scribbling over one render must not bleed into the next.
	for i := range first {
		first[i] = 0xAA
	}
	second, err := Render(Font5x7, "LI", nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x7F), second[0])

	g, ok := Font5x7.Glyph('L')
	require.True(t, ok)
	assert.Equal(t, []byte{0x7F, 0x40, 0x40, 0x40, 0x40}, g.Columns)
}

func TestFont5x7Coverage(t *testing.T) {
	for r := rune(0x20); r <= 0x7E; r++ {
		g, ok := Font5x7.Glyph(r)
		require.True(t, ok, "missing glyph for %q", r)
		assert.Equal(t, 5, g.Width(), "glyph %q", r)
	}

	_, ok := Font5x7.Glyph('é')
	assert.False(t, ok)
	_, ok = Font5x7.Glyph(0x1F)
	assert.False(t, ok)
}

func TestBlank(t *testing.T) {
	g := Blank(3)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, g.Columns)
}

func TestTableGlyph(t *testing.T) {
	face := Table{'x': {0x01, 0x02}}

	g, ok := face.Glyph('x')
	require.True(t, ok)
	assert.Equal(t, []byte{0x01, 0x02}, g.Columns)

	_, ok = face.Glyph('y')
	assert.False(t, ok)
}
