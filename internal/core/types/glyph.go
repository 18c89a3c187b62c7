package types

import "fmt"

// Glyph - упакованный цветной символ для отрисовки спрайта без атласа.
//
//	[0:8]  - символ ASCII
//	[8:32] - RGB-цвет
type Glyph uint32

const (
	bitsChar  = 8
	bitsColor = 24

	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1
	maskColor = (1 << bitsColor) - 1
)

// Стандартные глифы тайлов и сущностей.
var (
	GlyphWall    = MakeGlyph(0x6B5B45, '#')
	GlyphFloor   = MakeGlyph(0x3A3A3A, '.')
	GlyphPlayer  = MakeGlyph(0xFFFFFF, '@')
	GlyphUnknown = MakeGlyph(0xFF00FF, '?')
)

// MakeGlyph собирает Glyph из цвета 0xRRGGBB и символа.
// Учитываются младшие 24 бита цвета и младшие 8 бит символа.
func MakeGlyph(colorRGB uint32, char byte) Glyph {
	return Glyph((colorRGB&maskColor)<<shiftColor | (uint32(char) & maskChar))
}

func (g Glyph) Color() uint32 {
	return uint32(g>>shiftColor) & maskColor
}

func (g Glyph) Char() byte {
	return byte(g & maskChar)
}

// Rune - символ для терминальных клиентов.
func (g Glyph) Rune() rune {
	return rune(g.Char())
}

// RGB раскладывает цвет на компоненты.
func (g Glyph) RGB() (r, gr, b int32) {
	c := g.Color()
	return int32(c >> 16 & 0xFF), int32(c >> 8 & 0xFF), int32(c & 0xFF)
}

// Dim возвращает тот же символ с цветом, ослабленным в factor раз (factor >= 1).
// Используется для тайлов вне поля зрения.
func (g Glyph) Dim(factor uint32) Glyph {
	if factor <= 1 {
		return g
	}
	c := g.Color()
	r := (c >> 16 & 0xFF) / factor
	gr := (c >> 8 & 0xFF) / factor
	b := (c & 0xFF) / factor
	return MakeGlyph(r<<16|gr<<8|b, g.Char())
}

// HexColor возвращает цвет в виде "#RRGGBB".
func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}

func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}
	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.HexColor())
}

// MarshalText - для JSON-снимков кадра: "#RRGGBB:c".
func (g Glyph) MarshalText() ([]byte, error) {
	return []byte(g.HexColor() + ":" + string([]byte{g.Char()})), nil
}
