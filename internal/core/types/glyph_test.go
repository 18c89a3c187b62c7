package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeGlyph(t *testing.T) {
	tests := []struct {
		name  string
		color uint32
		char  byte
		want  Glyph
	}{
		{"orange A", 0xFFA500, 'A', Glyph(0xFFA50041)},
		{"black space", 0x000000, ' ', Glyph(0x00000020)},
		{"color truncated to 24 bits", 0x12345678, 'x', Glyph(0x34567878)},
		{"max char", 0x404040, 0xFF, Glyph(0x404040FF)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MakeGlyph(tt.color, tt.char)
			assert.Equal(t, tt.want, g)
			assert.Equal(t, tt.char, g.Char())
			assert.Equal(t, tt.color&maskColor, g.Color())
		})
	}
}

func TestGlyph_RGBAndDim(t *testing.T) {
	g := MakeGlyph(0x804020, '#')
	r, gr, b := g.RGB()
	assert.Equal(t, int32(0x80), r)
	assert.Equal(t, int32(0x40), gr)
	assert.Equal(t, int32(0x20), b)

	d := g.Dim(2)
	assert.Equal(t, uint32(0x402010), d.Color())
	assert.Equal(t, byte('#'), d.Char())
	assert.Equal(t, g, g.Dim(1))
	assert.Equal(t, '#', d.Rune())
}

func TestGlyph_String(t *testing.T) {
	assert.Equal(t, "Glyph{char='@', color=#FFFFFF}", GlyphPlayer.String())
	assert.Equal(t, "Glyph{char='\\x0A', color=#000000}", MakeGlyph(0, '\n').String())
}

func TestGlyph_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		G Glyph `json:"g"`
	}{G: MakeGlyph(0x00FF00, 'g')})
	require.NoError(t, err)
	assert.JSONEq(t, `{"g":"#00FF00:g"}`, string(data))
}
